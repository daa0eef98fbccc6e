package memory

import (
	"context"

	"ai-writing-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type PreferenceRepository struct {
	cache *cache.Cache
	tx    *Tx
}

func NewPreferenceRepository(store *Store, tx *Tx) contract.PreferenceRepository {
	return &PreferenceRepository{cache: store.preferences, tx: tx}
}

func (r *PreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	if x, found := r.cache.Get(key); found {
		return x.(string), nil
	}
	return "", nil
}

func (r *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	r.tx.touch(r.cache, key)
	r.cache.Set(key, value, cache.NoExpiration)
	return nil
}

func (r *PreferenceRepository) Delete(ctx context.Context, key string) error {
	r.tx.touch(r.cache, key)
	r.cache.Delete(key)
	return nil
}
