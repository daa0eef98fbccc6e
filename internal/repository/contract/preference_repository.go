package contract

import "context"

const PreferenceActiveDocument = "active_document_id"

type PreferenceRepository interface {
	// Get returns "" when the key is unset.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
