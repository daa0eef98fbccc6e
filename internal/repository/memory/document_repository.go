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

type documentRecord struct {
	*entity.Document
}

func (r documentRecord) recordID() uuid.UUID   { return r.Id }
func (r documentRecord) documentID() uuid.UUID { return r.Id }
func (r documentRecord) timeField(name string) (time.Time, bool) {
	if name == specification.FieldLastModified {
		return r.LastModified, true
	}
	return time.Time{}, false
}

type DocumentRepository struct {
	cache *cache.Cache
	tx    *Tx
}

// NewDocumentRepository binds the repository to store. Writes are recorded on tx
// when it is not nil.
func NewDocumentRepository(store *Store, tx *Tx) contract.DocumentRepository {
	return &DocumentRepository{cache: store.documents, tx: tx}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *entity.Document) error {
	if doc.Id == uuid.Nil {
		doc.Id = uuid.New()
	}
	r.tx.touch(r.cache, doc.Id.String())
	return r.cache.Add(doc.Id.String(), doc.Clone(), cache.NoExpiration)
}

func (r *DocumentRepository) Save(ctx context.Context, doc *entity.Document) error {
	r.tx.touch(r.cache, doc.Id.String())
	r.cache.Set(doc.Id.String(), doc.Clone(), cache.NoExpiration)
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.tx.touch(r.cache, id.String())
	r.cache.Delete(id.String())
	return nil
}

func (r *DocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	docs, err := r.FindAll(ctx, specs...)
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

func (r *DocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	items := r.cache.Items()
	records := make([]documentRecord, 0, len(items))
	for _, item := range items {
		records = append(records, documentRecord{item.Object.(*entity.Document)})
	}

	records = applySpecifications(records, specs...)

	docs := make([]*entity.Document, len(records))
	for i, rec := range records {
		docs[i] = rec.Clone()
	}
	return docs, nil
}

func (r *DocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, err := r.FindAll(ctx, specs...)
	return int64(len(docs)), err
}
