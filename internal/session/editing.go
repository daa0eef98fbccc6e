package session

import (
	"context"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/entity"
	"ai-writing-be/pkg/readability"
	"ai-writing-be/pkg/richtext"
)

// view must run on the event loop.
func (s *Session) view() dto.SessionResponse {
	v := dto.SessionResponse{
		Document:      dto.NewDocumentResponse(s.doc),
		Revision:      s.editor.Revision(),
		AnalysisState: s.loop.State().String(),
		Proactive:     s.loop.Enabled(),
		Generating:    s.generating > 0,
	}
	v.Document.Content = s.editor.Content()
	if !s.doc.TitlePinned {
		v.Document.Title = richtext.DeriveTitle(v.Document.Content)
	}
	if sel, ok := s.editor.Selection(); ok {
		v.Selection = &dto.SelectionResponse{Start: sel.Start, End: sel.End, Text: sel.Text}
	}
	if sg, ok := s.loop.Suggestion(); ok {
		v.Suggestion = dto.NewSuggestionResponse(sg)
	}
	if s.expert != nil {
		e := *s.expert
		v.ActiveExpert = &e
	}
	return v
}

func (s *Session) State(ctx context.Context) (*dto.SessionResponse, error) {
	var res *dto.SessionResponse
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		v := s.view()
		res = &v
		return nil
	})
	return res, err
}

// contentChanged propagates an editor mutation to the working copy, the
// analysis loop, persistence and subscribers.
func (s *Session) contentChanged() {
	s.doc.Content = s.editor.Content()
	s.loop.OnContentChanged(s.doc.Content)
	s.markDirty()
	s.broadcast(constant.EventContentUpdated, s.contentResponse())
}

func (s *Session) contentResponse() dto.ContentResponse {
	return dto.ContentResponse{
		DocumentId: s.doc.Id,
		Content:    s.editor.Content(),
		Revision:   s.editor.Revision(),
	}
}

// UpdateContent replaces the whole content, as typing in the editor does.
// Any selection is cleared.
func (s *Session) UpdateContent(ctx context.Context, text string) (*dto.ContentResponse, error) {
	var res *dto.ContentResponse
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		_, hadSelection := s.editor.Selection()
		if s.editor.UpdateContent(text) {
			s.contentChanged()
			if hadSelection {
				s.broadcast(constant.EventSelectionCleared, nil)
			}
		}
		r := s.contentResponse()
		res = &r
		return nil
	})
	return res, err
}

// SetSelection replaces the selection; nil clears it. A new selection
// retires the staged suggestion.
func (s *Session) SetSelection(ctx context.Context, r *entity.SelectionRange) error {
	return s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		if err := s.editor.SetSelection(r); err != nil {
			return err
		}
		s.loop.OnSelectionChanged(r != nil)
		return nil
	})
}

func (s *Session) SetWritingContext(ctx context.Context, wc entity.WritingContext) error {
	return s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		if s.doc.WritingContext == wc {
			return nil
		}
		s.doc.WritingContext = wc
		s.markDirty()
		s.broadcast(constant.EventContextUpdated, wc)
		return nil
	})
}

// SetProactive turns the analysis loop on or off. Turning it off drops the
// staged suggestion.
func (s *Session) SetProactive(ctx context.Context, enabled bool) error {
	return s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		s.loop.SetEnabled(enabled)
		return nil
	})
}

func (s *Session) Stats(ctx context.Context) (*readability.Stats, error) {
	var content string
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		content = s.editor.Content()
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats := readability.Analyze(richtext.PlainText(content))
	return &stats, nil
}
