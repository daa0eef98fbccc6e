package session

import (
	"context"
	"fmt"
	"strings"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/generator"

	"github.com/google/uuid"
)

type ChatInput struct {
	Message     string
	Attachments []entity.Attachment
	Thinking    bool
}

// SendChat appends the user's message to the chat of the active document and
// then the model's answer. When the model fails an apology is appended in
// its place and the error is returned.
func (s *Session) SendChat(ctx context.Context, in ChatInput) (*entity.ChatMessage, error) {
	var (
		req   generator.ChatRequest
		docId uuid.UUID
	)
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		if strings.TrimSpace(in.Message) == "" && len(in.Attachments) == 0 {
			return generator.ErrEmptyPrompt
		}

		text := in.Message
		if n := len(in.Attachments); n > 0 {
			text += fmt.Sprintf(constant.ChatAttachmentSuffix, n)
		}

		req = generator.ChatRequest{
			History:         append([]entity.ChatMessage(nil), s.doc.ChatHistory...),
			Message:         in.Message,
			Attachments:     in.Attachments,
			DocumentContext: s.editor.Content(),
			Thinking:        in.Thinking,
			Expert:          s.activeExpert(),
		}
		docId = s.doc.Id

		s.appendChat(s.ctx, docId, s.newChatMessage(entity.ChatRoleUser, text))
		s.beginGeneration(GenerationChat)
		return nil
	})
	if err != nil {
		return nil, err
	}

	reply, genErr := s.generator.Chat(ctx, req)

	var answer entity.ChatMessage
	err = s.finish(func() error {
		s.endGeneration(GenerationChat, genErr)
		if genErr != nil {
			reply = constant.ChatErrorReply
		}
		answer = s.newChatMessage(entity.ChatRoleModel, reply)
		s.appendChat(s.ctx, docId, answer)
		return genErr
	})
	return &answer, err
}

func (s *Session) newChatMessage(role entity.ChatRole, text string) entity.ChatMessage {
	return entity.ChatMessage{
		Id:        uuid.New(),
		Role:      role,
		Text:      text,
		Timestamp: s.timestamp(),
	}
}

// appendChat adds msg to the chat of docId, which may no longer be active.
func (s *Session) appendChat(ctx context.Context, docId uuid.UUID, msg entity.ChatMessage) {
	if s.doc.Id == docId {
		s.doc.ChatHistory = append(s.doc.ChatHistory, msg)
		s.markDirty()
		s.broadcast(constant.EventChatUpdated, s.doc.ChatHistory)
		return
	}

	doc, err := s.store.Get(ctx, docId)
	if err != nil || doc == nil {
		s.logger.Warn(module, "Dropping chat message for missing document", map[string]interface{}{
			"document_id": docId.String(),
		})
		return
	}
	doc.ChatHistory = append(doc.ChatHistory, msg)
	doc.LastModified = s.timestamp()
	if _, err := s.store.Save(ctx, doc); err != nil {
		s.logger.Error(module, "Failed to save chat message", map[string]interface{}{
			"document_id": docId.String(),
			"error":       err.Error(),
		})
	}
}

func (s *Session) ClearChat(ctx context.Context) error {
	return s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		s.doc.ChatHistory = []entity.ChatMessage{}
		s.markDirty()
		s.broadcast(constant.EventChatUpdated, s.doc.ChatHistory)
		return nil
	})
}

// RefineGoal asks for sharper versions of a writing goal.
func (s *Session) RefineGoal(ctx context.Context, goal string) ([]entity.GoalSuggestion, error) {
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		if strings.TrimSpace(goal) == "" {
			return generator.ErrEmptyPrompt
		}
		s.beginGeneration(GenerationGoal)
		return nil
	})
	if err != nil {
		return nil, err
	}

	suggestions, genErr := s.generator.RefineGoal(ctx, goal)

	if err := s.finish(func() error {
		s.endGeneration(GenerationGoal, genErr)
		return nil
	}); err != nil {
		return nil, err
	}
	return suggestions, genErr
}

// SetExperts replaces the expert list of the active document. Experts
// without an id get one.
func (s *Session) SetExperts(ctx context.Context, experts []entity.ExpertPrompt) ([]entity.ExpertPrompt, error) {
	list := make([]entity.ExpertPrompt, len(experts))
	for i, e := range experts {
		if e.Id == "" {
			e.Id = uuid.NewString()
		}
		list[i] = e
	}

	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		s.doc.Experts = list
		if s.expert != nil {
			if _, ok := s.findExpert(s.expert.Id); !ok {
				s.expert = nil
			}
		}
		s.markDirty()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// SetActiveExpert selects the expert lens used by draft and chat. An empty
// id clears it.
func (s *Session) SetActiveExpert(ctx context.Context, id string) (*entity.ExpertPrompt, error) {
	var res *entity.ExpertPrompt
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		if id == "" {
			s.expert = nil
			return nil
		}
		e, ok := s.findExpert(id)
		if !ok {
			return ErrExpertNotFound
		}
		s.expert = &e
		res = &e
		return nil
	})
	return res, err
}

// findExpert looks in the document's experts, then in the built-in catalog.
func (s *Session) findExpert(id string) (entity.ExpertPrompt, bool) {
	for _, e := range s.doc.Experts {
		if e.Id == id {
			return e, true
		}
	}
	return constant.FindDefaultExpert(id)
}

func (s *Session) activeExpert() *entity.ExpertPrompt {
	if s.expert == nil {
		return nil
	}
	e := *s.expert
	return &e
}

func ExpertCatalog() []entity.ExpertPrompt {
	return append([]entity.ExpertPrompt(nil), constant.DefaultExperts...)
}
