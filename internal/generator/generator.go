// Package generator is the boundary to the language model: prompts go out,
// validated results come back.
package generator

import (
	"ai-writing-be/internal/entity"
	"context"
	"errors"
)

const (
	AnalysisMinRunes    = 50
	AnalysisMaxRunes    = 10000
	ChatContextMaxRunes = 10000
	RewriteContextRunes = 2000
)

var (
	ErrMalformedOutput = errors.New("model returned malformed output")
	ErrEmptyPrompt     = errors.New("prompt is empty")
)

type DraftRequest struct {
	Prompt          string
	Attachments     []entity.Attachment
	Search          bool
	Maps            bool
	Expert          *entity.ExpertPrompt
	DocumentContext string
	WritingContext  entity.WritingContext
}

type ChatRequest struct {
	History         []entity.ChatMessage
	Message         string
	Attachments     []entity.Attachment
	DocumentContext string
	Thinking        bool
	Expert          *entity.ExpertPrompt
}

type Generator interface {
	// Analyze critiques the whole document. Below AnalysisMinRunes it returns
	// NoSuggestion without calling the model.
	Analyze(ctx context.Context, documentText string, wc entity.WritingContext) (AnalysisResult, error)
	RewriteSpan(ctx context.Context, selectedText, instruction, documentContext string) (string, error)
	Draft(ctx context.Context, req DraftRequest) (string, error)
	Chat(ctx context.Context, req ChatRequest) (string, error)
	RefineGoal(ctx context.Context, goal string) ([]entity.GoalSuggestion, error)
}
