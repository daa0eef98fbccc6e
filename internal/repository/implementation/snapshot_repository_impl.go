package implementation

import (
	"context"

	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/mapper"
	"ai-writing-be/internal/model"
	"ai-writing-be/internal/repository/contract"
	"ai-writing-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SnapshotRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SnapshotMapper
}

func NewSnapshotRepository(db *gorm.DB) contract.SnapshotRepository {
	return &SnapshotRepositoryImpl{
		db:     db,
		mapper: mapper.NewSnapshotMapper(),
	}
}

func (r *SnapshotRepositoryImpl) Create(ctx context.Context, snapshot *entity.Snapshot) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(snapshot)).Error
}

func (r *SnapshotRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Snapshot, error) {
	var models []*model.Snapshot
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SnapshotRepositoryImpl) DeleteByIds(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Snapshot{}).Error
}

func (r *SnapshotRepositoryImpl) DeleteAllByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.Snapshot{}).Error
}
