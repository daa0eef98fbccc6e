package implementation

import (
	"context"
	"errors"

	"ai-writing-be/internal/model"
	"ai-writing-be/internal/repository/contract"

	"gorm.io/gorm"
)

type PreferenceRepositoryImpl struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{db: db}
}

func (r *PreferenceRepositoryImpl) Get(ctx context.Context, key string) (string, error) {
	var m model.Preference
	if err := r.db.WithContext(ctx).Where("pref_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.Value, nil
}

func (r *PreferenceRepositoryImpl) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Save(&model.Preference{Key: key, Value: value}).Error
}

func (r *PreferenceRepositoryImpl) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("pref_key = ?", key).Delete(&model.Preference{}).Error
}
