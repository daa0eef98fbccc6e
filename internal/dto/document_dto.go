package dto

import (
	"time"

	"ai-writing-be/internal/entity"

	"github.com/google/uuid"
)

// PersistDocumentMessage is the payload of the document persistence queue.
type PersistDocumentMessage struct {
	Id             uuid.UUID             `json:"id"`
	Title          string                `json:"title"`
	TitlePinned    bool                  `json:"title_pinned"`
	Content        string                `json:"content"`
	LastModified   time.Time             `json:"last_modified"`
	WritingContext entity.WritingContext `json:"writing_context"`
	ChatHistory    []entity.ChatMessage  `json:"chat_history"`
	Experts        []entity.ExpertPrompt `json:"experts"`
}

func NewPersistDocumentMessage(doc *entity.Document) PersistDocumentMessage {
	return PersistDocumentMessage{
		Id:             doc.Id,
		Title:          doc.Title,
		TitlePinned:    doc.TitlePinned,
		Content:        doc.Content,
		LastModified:   doc.LastModified,
		WritingContext: doc.WritingContext,
		ChatHistory:    doc.ChatHistory,
		Experts:        doc.Experts,
	}
}

func (m PersistDocumentMessage) ToEntity() *entity.Document {
	doc := &entity.Document{
		Id:             m.Id,
		Title:          m.Title,
		TitlePinned:    m.TitlePinned,
		Content:        m.Content,
		LastModified:   m.LastModified,
		WritingContext: m.WritingContext,
		ChatHistory:    m.ChatHistory,
		Experts:        m.Experts,
	}
	return doc.Clone()
}
