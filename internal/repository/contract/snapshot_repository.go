package contract

import (
	"context"

	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *entity.Snapshot) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Snapshot, error)
	DeleteByIds(ctx context.Context, ids []uuid.UUID) error
	DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error
}
