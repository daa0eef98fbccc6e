package session

import (
	"context"
	"fmt"
	"strings"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/editor"
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/generator"

	"github.com/google/uuid"
)

const draftLabelRunes = 15

// ApplySuggestion applies the staged suggestion named by id. When its
// original text is gone the suggestion is cleared, a notice is sent and
// Applied is false.
func (s *Session) ApplySuggestion(ctx context.Context, id string) (*dto.ApplySuggestionResponse, error) {
	var res *dto.ApplySuggestionResponse
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		sg, ok := s.loop.Suggestion()
		if !ok || sg.Id != id {
			return ErrSuggestionNotFound
		}
		if sg.IsAdvisory() {
			return ErrAdvisoryNotApplicable
		}

		if !s.editor.Contains(sg.OriginalText) {
			s.loop.ClearSuggestion()
			s.broadcast(constant.EventNotice, dto.NoticeResponse{Message: constant.NoticeSuggestionStale})
			res = &dto.ApplySuggestionResponse{Applied: false, Notice: constant.NoticeSuggestionStale}
			return nil
		}

		s.capturePreFlight(ctx, fmt.Sprintf("Apply suggestion (%s)", sg.Type))
		s.editor.ReplaceText(sg.OriginalText, sg.SuggestedText)
		s.loop.ClearSuggestion()
		s.contentChanged()

		s.publish(constant.DomainEventSuggestionApplied, map[string]interface{}{
			"document_id": s.doc.Id.String(),
			"type":        string(sg.Type),
		})
		res = &dto.ApplySuggestionResponse{Applied: true}
		return nil
	})
	return res, err
}

func (s *Session) DismissSuggestion(ctx context.Context) error {
	return s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		s.loop.ClearSuggestion()
		return nil
	})
}

func (s *Session) capturePreFlight(ctx context.Context, label string) {
	if _, stored := s.history.Capture(ctx, s.editor.Content(), label, entity.SnapshotTriggerAIPreFlight); stored {
		s.broadcast(constant.EventSnapshotsChanged, nil)
	}
}

// Refine rewrites the current selection following instruction. The
// selection is captured when the request starts; if that exact text is no
// longer at the same offsets when the model answers, nothing changes and
// ErrSelectionStale is returned. On generator failure the selection and
// content are left as they were.
func (s *Session) Refine(ctx context.Context, instruction string) (*dto.GenerationResponse, error) {
	instruction = strings.TrimSpace(instruction)

	var (
		sel     entity.SelectionRange
		content string
		docId   uuid.UUID
	)
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		var ok bool
		sel, ok = s.editor.Selection()
		if !ok {
			return ErrNoSelection
		}
		if instruction == "" {
			return generator.ErrEmptyPrompt
		}
		content = s.editor.Content()
		docId = s.doc.Id
		s.beginGeneration(GenerationRefine)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, genErr := s.generator.RewriteSpan(ctx, sel.Text, instruction, content)

	var res *dto.GenerationResponse
	err = s.finish(func() error {
		s.endGeneration(GenerationRefine, genErr)
		if genErr != nil {
			return genErr
		}
		if s.doc.Id != docId || !s.editor.Matches(sel) {
			return editor.ErrSelectionStale
		}

		s.capturePreFlight(s.ctx, instruction)
		if err := s.editor.ReplaceRange(sel, out); err != nil {
			return err
		}
		s.contentChanged()
		s.broadcast(constant.EventSelectionCleared, nil)
		res = &dto.GenerationResponse{Text: out, Revision: s.editor.Revision()}
		return nil
	})
	return res, err
}

type DraftInput struct {
	Prompt      string
	Attachments []entity.Attachment
	Search      bool
	Maps        bool
}

// Draft generates text from a prompt and appends it to the content,
// separated by a blank line.
func (s *Session) Draft(ctx context.Context, in DraftInput) (*dto.GenerationResponse, error) {
	var (
		req   generator.DraftRequest
		docId uuid.UUID
	)
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		if strings.TrimSpace(in.Prompt) == "" {
			return generator.ErrEmptyPrompt
		}
		req = generator.DraftRequest{
			Prompt:          in.Prompt,
			Attachments:     in.Attachments,
			Search:          in.Search,
			Maps:            in.Maps,
			Expert:          s.activeExpert(),
			DocumentContext: s.editor.Content(),
			WritingContext:  s.doc.WritingContext,
		}
		docId = s.doc.Id
		s.beginGeneration(GenerationDraft)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, genErr := s.generator.Draft(ctx, req)

	var res *dto.GenerationResponse
	err = s.finish(func() error {
		s.endGeneration(GenerationDraft, genErr)
		if genErr != nil {
			return genErr
		}
		if s.doc.Id != docId {
			return ErrDocumentChanged
		}

		s.capturePreFlight(s.ctx, "AI Draft: "+truncateRunes(strings.TrimSpace(in.Prompt), draftLabelRunes))

		current := s.editor.Content()
		next := out
		if strings.TrimSpace(current) != "" {
			next = current + "\n\n" + out
		}
		if s.editor.UpdateContent(next) {
			s.contentChanged()
		}
		res = &dto.GenerationResponse{Text: out, Revision: s.editor.Revision()}
		return nil
	})
	return res, err
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
