package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultDocumentTitle = "Untitled Draft"

// WritingContext grounds generation and analysis.
type WritingContext struct {
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
	Goal     string `json:"goal"`
	Format   string `json:"format"`
}

type ExpertPrompt struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

type Document struct {
	Id             uuid.UUID
	Title          string
	TitlePinned    bool // user-set title; not re-derived from content
	Content        string
	LastModified   time.Time
	WritingContext WritingContext
	ChatHistory    []ChatMessage
	Experts        []ExpertPrompt
}

// NewBlankDocument returns the document created on first launch or on "new document".
func NewBlankDocument(now time.Time) *Document {
	return &Document{
		Id:           uuid.New(),
		Title:        DefaultDocumentTitle,
		LastModified: now,
		ChatHistory:  []ChatMessage{},
		Experts:      []ExpertPrompt{},
	}
}

// Clone copies the slices so the working copy and the stored value never alias.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.ChatHistory = append([]ChatMessage(nil), d.ChatHistory...)
	c.Experts = append([]ExpertPrompt(nil), d.Experts...)
	if c.ChatHistory == nil {
		c.ChatHistory = []ChatMessage{}
	}
	if c.Experts == nil {
		c.Experts = []ExpertPrompt{}
	}
	return &c
}
