package dto

import (
	"time"

	"ai-writing-be/internal/entity"
	"ai-writing-be/pkg/readability"

	"github.com/google/uuid"
)

// --- Requests ---

type CreateDocumentRequest struct {
	Content string `json:"content"`
}

type RenameDocumentRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"max=200"`
}

type UpdateContentRequest struct {
	Content string `json:"content"`
}

type SelectionRequest struct {
	Start int    `json:"start" validate:"min=0"`
	End   int    `json:"end" validate:"gtfield=Start"`
	Text  string `json:"text" validate:"required"`
}

// SetSelectionRequest clears the selection when Selection is nil.
type SetSelectionRequest struct {
	Selection *SelectionRequest `json:"selection" validate:"omitempty"`
}

type WritingContextRequest struct {
	Audience string `json:"audience" validate:"max=500"`
	Tone     string `json:"tone" validate:"max=500"`
	Goal     string `json:"goal" validate:"max=2000"`
	Format   string `json:"format" validate:"max=500"`
}

type SetProactiveRequest struct {
	Enabled bool `json:"enabled"`
}

type ExpertRequest struct {
	Id     string `json:"id"`
	Name   string `json:"name" validate:"required,max=100"`
	Prompt string `json:"prompt" validate:"required"`
}

type SetExpertsRequest struct {
	Experts []ExpertRequest `json:"experts" validate:"dive"`
}

// SetActiveExpertRequest clears the active expert when Id is empty.
type SetActiveExpertRequest struct {
	Id string `json:"id"`
}

type RefineRequest struct {
	Instruction string `json:"instruction" validate:"required"`
}

type AttachmentRequest struct {
	Name     string `json:"name" validate:"required"`
	MimeType string `json:"mime_type" validate:"required"`
	// Data is base64 in JSON.
	Data []byte `json:"data" validate:"required"`
}

type DraftRequest struct {
	Prompt      string              `json:"prompt" validate:"required"`
	Attachments []AttachmentRequest `json:"attachments" validate:"dive"`
	Search      bool                `json:"search"`
	Maps        bool                `json:"maps"`
}

type ChatRequest struct {
	Message     string              `json:"message" validate:"required_without=Attachments"`
	Attachments []AttachmentRequest `json:"attachments" validate:"dive"`
	Thinking    bool                `json:"thinking"`
}

type RefineGoalRequest struct {
	Goal string `json:"goal" validate:"required"`
}

type CaptureSnapshotRequest struct {
	Label string `json:"label" validate:"max=200"`
}

// --- Responses ---

type DocumentSummaryResponse struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	LastModified time.Time `json:"last_modified"`
	Active       bool      `json:"active"`
}

type WorkspaceResponse struct {
	ActiveId  uuid.UUID                 `json:"active_id"`
	Documents []DocumentSummaryResponse `json:"documents"`
}

type DocumentResponse struct {
	Id             uuid.UUID             `json:"id"`
	Title          string                `json:"title"`
	TitlePinned    bool                  `json:"title_pinned"`
	Content        string                `json:"content"`
	LastModified   time.Time             `json:"last_modified"`
	WritingContext entity.WritingContext `json:"writing_context"`
	ChatHistory    []entity.ChatMessage  `json:"chat_history"`
	Experts        []entity.ExpertPrompt `json:"experts"`
}

type SelectionResponse struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type SuggestionResponse struct {
	Id            string `json:"id"`
	OriginalText  string `json:"original_text"`
	SuggestedText string `json:"suggested_text"`
	Reason        string `json:"reason"`
	Type          string `json:"type"`
	Advisory      bool   `json:"advisory"`
}

type SessionResponse struct {
	Document      DocumentResponse     `json:"document"`
	Revision      uint64               `json:"revision"`
	Selection     *SelectionResponse   `json:"selection"`
	Suggestion    *SuggestionResponse  `json:"suggestion"`
	AnalysisState string               `json:"analysis_state"`
	Proactive     bool                 `json:"proactive"`
	Generating    bool                 `json:"generating"`
	ActiveExpert  *entity.ExpertPrompt `json:"active_expert"`
}

type ContentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Content    string    `json:"content"`
	Revision   uint64    `json:"revision"`
}

type ApplySuggestionResponse struct {
	Applied bool   `json:"applied"`
	Notice  string `json:"notice,omitempty"`
}

type GenerationResponse struct {
	Text     string `json:"text"`
	Revision uint64 `json:"revision"`
}

type SnapshotResponse struct {
	Id        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	Label     string    `json:"label"`
	Trigger   string    `json:"trigger"`
}

type CaptureSnapshotResponse struct {
	Stored   bool              `json:"stored"`
	Snapshot *SnapshotResponse `json:"snapshot"`
}

type StatsResponse = readability.Stats

type NoticeResponse struct {
	Message string `json:"message"`
}

type GenerationEvent struct {
	Kind string `json:"kind"`
}

type ErrorEvent struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func NewDocumentResponse(doc *entity.Document) DocumentResponse {
	return DocumentResponse{
		Id:             doc.Id,
		Title:          doc.Title,
		TitlePinned:    doc.TitlePinned,
		Content:        doc.Content,
		LastModified:   doc.LastModified,
		WritingContext: doc.WritingContext,
		ChatHistory:    append([]entity.ChatMessage{}, doc.ChatHistory...),
		Experts:        append([]entity.ExpertPrompt{}, doc.Experts...),
	}
}

func NewSuggestionResponse(s entity.Suggestion) *SuggestionResponse {
	return &SuggestionResponse{
		Id:            s.Id,
		OriginalText:  s.OriginalText,
		SuggestedText: s.SuggestedText,
		Reason:        s.Reason,
		Type:          string(s.Type),
		Advisory:      s.IsAdvisory(),
	}
}

func NewSnapshotResponse(s entity.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Id:        s.Id,
		Timestamp: s.Timestamp,
		Content:   s.Content,
		Label:     s.Label,
		Trigger:   string(s.Trigger),
	}
}

func NewSnapshotResponses(snapshots []entity.Snapshot) []SnapshotResponse {
	out := make([]SnapshotResponse, len(snapshots))
	for i, s := range snapshots {
		out[i] = NewSnapshotResponse(s)
	}
	return out
}

func (r SelectionRequest) ToEntity() *entity.SelectionRange {
	return &entity.SelectionRange{Start: r.Start, End: r.End, Text: r.Text}
}

func (r WritingContextRequest) ToEntity() entity.WritingContext {
	return entity.WritingContext{Audience: r.Audience, Tone: r.Tone, Goal: r.Goal, Format: r.Format}
}

func ToAttachments(reqs []AttachmentRequest) []entity.Attachment {
	out := make([]entity.Attachment, len(reqs))
	for i, a := range reqs {
		out[i] = entity.Attachment{Name: a.Name, MimeType: a.MimeType, Data: a.Data}
	}
	return out
}
