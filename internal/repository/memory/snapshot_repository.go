package memory

import (
	"context"
	"time"

	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/repository/contract"
	"ai-writing-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type snapshotRecord struct {
	*entity.Snapshot
}

func (r snapshotRecord) recordID() uuid.UUID   { return r.Id }
func (r snapshotRecord) documentID() uuid.UUID { return r.DocumentId }
func (r snapshotRecord) timeField(name string) (time.Time, bool) {
	if name == specification.FieldTimestamp {
		return r.Timestamp, true
	}
	return time.Time{}, false
}

type SnapshotRepository struct {
	cache *cache.Cache
	tx    *Tx
}

func NewSnapshotRepository(store *Store, tx *Tx) contract.SnapshotRepository {
	return &SnapshotRepository{cache: store.snapshots, tx: tx}
}

func (r *SnapshotRepository) Create(ctx context.Context, snapshot *entity.Snapshot) error {
	s := *snapshot
	r.tx.touch(r.cache, s.Id.String())
	return r.cache.Add(s.Id.String(), &s, cache.NoExpiration)
}

func (r *SnapshotRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Snapshot, error) {
	items := r.cache.Items()
	records := make([]snapshotRecord, 0, len(items))
	for _, item := range items {
		records = append(records, snapshotRecord{item.Object.(*entity.Snapshot)})
	}

	records = applySpecifications(records, specs...)

	out := make([]*entity.Snapshot, len(records))
	for i, rec := range records {
		s := *rec.Snapshot
		out[i] = &s
	}
	return out, nil
}

func (r *SnapshotRepository) DeleteByIds(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		r.tx.touch(r.cache, id.String())
		r.cache.Delete(id.String())
	}
	return nil
}

func (r *SnapshotRepository) DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	for key, item := range r.cache.Items() {
		if item.Object.(*entity.Snapshot).DocumentId == documentId {
			r.tx.touch(r.cache, key)
			r.cache.Delete(key)
		}
	}
	return nil
}
