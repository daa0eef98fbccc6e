package mapper

import (
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/model"
)

type SnapshotMapper struct{}

func NewSnapshotMapper() *SnapshotMapper {
	return &SnapshotMapper{}
}

func (m *SnapshotMapper) ToEntity(s *model.Snapshot) *entity.Snapshot {
	if s == nil {
		return nil
	}
	return &entity.Snapshot{
		Id:         s.Id,
		DocumentId: s.DocumentId,
		Timestamp:  s.Timestamp,
		Content:    s.Content,
		Label:      s.Label,
		Trigger:    entity.SnapshotTrigger(s.Trigger),
	}
}

func (m *SnapshotMapper) ToModel(s *entity.Snapshot) *model.Snapshot {
	if s == nil {
		return nil
	}
	return &model.Snapshot{
		Id:         s.Id,
		DocumentId: s.DocumentId,
		Timestamp:  s.Timestamp,
		Content:    s.Content,
		Label:      s.Label,
		Trigger:    string(s.Trigger),
	}
}

func (m *SnapshotMapper) ToEntities(snapshots []*model.Snapshot) []*entity.Snapshot {
	entities := make([]*entity.Snapshot, len(snapshots))
	for i, s := range snapshots {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
