package session

import (
	"errors"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/generator"
	"ai-writing-be/pkg/llm"
)

const (
	GenerationRefine = "refine"
	GenerationDraft  = "draft"
	GenerationChat   = "chat"
	GenerationGoal   = "goal"
)

// beginGeneration marks a user-initiated model call in flight. Proactive
// analysis is suppressed until the matching endGeneration.
func (s *Session) beginGeneration(kind string) {
	s.generating++
	s.loop.OnGeneratingChanged()
	s.broadcast(constant.EventGenerationStarted, dto.GenerationEvent{Kind: kind})
}

func (s *Session) endGeneration(kind string, err error) {
	if s.generating > 0 {
		s.generating--
	}
	s.loop.OnGeneratingChanged()
	s.broadcast(constant.EventGenerationFinished, dto.GenerationEvent{Kind: kind})

	if err != nil {
		s.logger.Warn(module, "Generation failed", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		s.broadcast(constant.EventError, dto.ErrorEvent{Kind: errorKind(err), Message: err.Error()})
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, generator.ErrMalformedOutput):
		return llm.KindMalformedOutput.String()
	case errors.Is(err, generator.ErrEmptyPrompt):
		return llm.KindInvalidRequest.String()
	default:
		return llm.KindOf(err).String()
	}
}
