package mapper

import (
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	chat := d.ChatHistory.Data()
	if chat == nil {
		chat = []entity.ChatMessage{}
	}
	experts := d.Experts.Data()
	if experts == nil {
		experts = []entity.ExpertPrompt{}
	}

	return &entity.Document{
		Id:             d.Id,
		Title:          d.Title,
		TitlePinned:    d.TitlePinned,
		Content:        d.Content,
		LastModified:   d.LastModified,
		WritingContext: d.WritingContext.Data(),
		ChatHistory:    chat,
		Experts:        experts,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:             d.Id,
		Title:          d.Title,
		TitlePinned:    d.TitlePinned,
		Content:        d.Content,
		LastModified:   d.LastModified,
		WritingContext: datatypes.NewJSONType(d.WritingContext),
		ChatHistory:    datatypes.NewJSONType(d.ChatHistory),
		Experts:        datatypes.NewJSONType(d.Experts),
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
