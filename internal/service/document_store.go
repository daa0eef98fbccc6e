package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/internal/repository/contract"
	"ai-writing-be/internal/repository/specification"
	"ai-writing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IDocumentStore owns persisted documents, their snapshots and the active
// document pointer.
type IDocumentStore interface {
	// List returns every document, most recently modified first.
	List(ctx context.Context) ([]*entity.Document, error)
	// Get returns nil when the document does not exist.
	Get(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	Create(ctx context.Context, doc *entity.Document) error
	// Save writes doc unless it was deleted or the stored copy is newer.
	// It reports whether the write happened.
	Save(ctx context.Context, doc *entity.Document) (bool, error)
	// Enqueue hands doc to the persistence queue and returns immediately.
	Enqueue(ctx context.Context, doc *entity.Document) error
	// Delete removes the document together with its snapshots.
	Delete(ctx context.Context, id uuid.UUID) error
	ActiveId(ctx context.Context) (uuid.UUID, error)
	SetActiveId(ctx context.Context, id uuid.UUID) error
}

type documentStore struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewDocumentStore(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, log logger.ILogger) IDocumentStore {
	return &documentStore{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *documentStore) List(ctx context.Context) ([]*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().FindAll(ctx, specification.MostRecentlyModified())
}

func (s *documentStore) Get(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
}

func (s *documentStore) Create(ctx context.Context, doc *entity.Document) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().Create(ctx, doc)
}

func (s *documentStore) Save(ctx context.Context, doc *entity.Document) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	stored, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: doc.Id})
	if err != nil {
		return false, err
	}
	if stored == nil || stored.LastModified.After(doc.LastModified) {
		return false, uow.Commit()
	}

	if err := uow.DocumentRepository().Save(ctx, doc); err != nil {
		return false, err
	}
	if err := uow.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *documentStore) Enqueue(ctx context.Context, doc *entity.Document) error {
	payload, err := json.Marshal(dto.NewPersistDocumentMessage(doc))
	if err != nil {
		return fmt.Errorf("marshal persist message: %w", err)
	}
	return s.publisher.Publish(ctx, payload)
}

func (s *documentStore) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SnapshotRepository().DeleteAllByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	active, err := uow.PreferenceRepository().Get(ctx, contract.PreferenceActiveDocument)
	if err != nil {
		return err
	}
	if active == id.String() {
		if err := uow.PreferenceRepository().Delete(ctx, contract.PreferenceActiveDocument); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (s *documentStore) ActiveId(ctx context.Context) (uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	raw, err := uow.PreferenceRepository().Get(ctx, contract.PreferenceActiveDocument)
	if err != nil || raw == "" {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		s.logger.Warn("DOCUMENT_STORE", "Ignoring malformed active document id", map[string]interface{}{
			"value": raw,
		})
		return uuid.Nil, nil
	}
	return id, nil
}

func (s *documentStore) SetActiveId(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.PreferenceRepository().Set(ctx, contract.PreferenceActiveDocument, id.String())
}
