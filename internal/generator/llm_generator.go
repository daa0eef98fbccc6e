package generator

import (
	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/pkg/llm"
	"ai-writing-be/pkg/retry"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const module = "GENERATOR"

type Config struct {
	FastModel      string
	QualityModel   string
	MaxRetries     int
	RetryBaseDelay time.Duration
}

type llmGenerator struct {
	provider llm.LLMProvider
	cfg      Config
	logger   logger.ILogger
}

func NewLLMGenerator(provider llm.LLMProvider, cfg Config, log logger.ILogger) Generator {
	return &llmGenerator{provider: provider, cfg: cfg, logger: log}
}

func (g *llmGenerator) call(ctx context.Context, operation string, history []llm.Message, opts ...llm.Option) (string, error) {
	policy := retry.Policy{
		MaxAttempts: g.cfg.MaxRetries + 1,
		IsRetryable: llm.IsRetryable,
		NewBackOff:  retry.Exponential(g.cfg.RetryBaseDelay),
		OnRetry: func(err error, wait time.Duration) {
			g.logger.Warn(module, "AI request failed, retrying", map[string]interface{}{
				"operation": operation,
				"wait_ms":   wait.Milliseconds(),
				"error":     err.Error(),
			})
		},
	}

	return retry.Do(ctx, policy, func(ctx context.Context) (string, error) {
		return g.provider.Chat(ctx, history, opts...)
	})
}

type analysisPayload struct {
	HasSuggestion bool   `json:"hasSuggestion"`
	OriginalText  string `json:"originalText"`
	SuggestedText string `json:"suggestedText"`
	Reason        string `json:"reason"`
	Type          string `json:"type"`
}

func (g *llmGenerator) Analyze(ctx context.Context, documentText string, wc entity.WritingContext) (AnalysisResult, error) {
	if utf8.RuneCountInString(documentText) < AnalysisMinRunes {
		return NoSuggestion{}, nil
	}

	input := truncateRunes(documentText, AnalysisMaxRunes)
	prompt := fmt.Sprintf(constant.AnalyzePrompt, writingContextBlock(wc), input)

	raw, err := g.call(ctx, "analyze",
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		llm.WithModel(g.cfg.FastModel),
		llm.WithSystemInstruction(constant.SystemInstructionProactive),
		llm.WithJSONOutput(),
	)
	if err != nil {
		return NoSuggestion{}, err
	}

	return parseAnalysis(raw, input)
}

// parseAnalysis validates the model's JSON against the text it was given.
func parseAnalysis(raw, input string) (AnalysisResult, error) {
	var payload analysisPayload
	if err := json.Unmarshal(cleanJSON(raw), &payload); err != nil {
		return NoSuggestion{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	if !payload.HasSuggestion {
		return NoSuggestion{}, nil
	}

	kind := entity.SuggestionType(strings.ToLower(strings.TrimSpace(payload.Type)))
	if !kind.Valid() {
		return NoSuggestion{}, fmt.Errorf("%w: unknown suggestion type %q", ErrMalformedOutput, payload.Type)
	}

	if payload.OriginalText == "" {
		if strings.TrimSpace(payload.Reason) == "" {
			return NoSuggestion{}, fmt.Errorf("%w: advisory without reason", ErrMalformedOutput)
		}
		return Advisory{Reason: payload.Reason, Kind: kind}, nil
	}

	if payload.SuggestedText == "" {
		return NoSuggestion{}, fmt.Errorf("%w: substitution without replacement", ErrMalformedOutput)
	}
	if payload.SuggestedText == payload.OriginalText || !strings.Contains(input, payload.OriginalText) {
		return NoSuggestion{}, nil
	}

	return Substitution{
		Original:    payload.OriginalText,
		Replacement: payload.SuggestedText,
		Reason:      payload.Reason,
		Kind:        kind,
	}, nil
}

func (g *llmGenerator) RewriteSpan(ctx context.Context, selectedText, instruction, documentContext string) (string, error) {
	if strings.TrimSpace(instruction) == "" {
		return "", ErrEmptyPrompt
	}

	prompt := fmt.Sprintf(constant.RewriteSpanPrompt, truncateRunes(documentContext, RewriteContextRunes), selectedText, instruction)

	out, err := g.call(ctx, "rewrite",
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		llm.WithModel(g.cfg.FastModel),
		llm.WithSystemInstruction(constant.SystemInstructionEditor),
	)
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty rewrite", ErrMalformedOutput)
	}
	return out, nil
}

func (g *llmGenerator) Draft(ctx context.Context, req DraftRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", ErrEmptyPrompt
	}

	var prompt strings.Builder
	prompt.WriteString(req.Prompt)
	if req.WritingContext != (entity.WritingContext{}) {
		prompt.WriteString("\n\n")
		prompt.WriteString(writingContextBlock(req.WritingContext))
	}
	if req.Expert != nil {
		fmt.Fprintf(&prompt, constant.ExpertLensBlock, req.Expert.Name, req.Expert.Prompt)
	}
	if strings.TrimSpace(req.DocumentContext) != "" {
		fmt.Fprintf(&prompt, constant.DraftDocumentBlock, truncateRunes(req.DocumentContext, ChatContextMaxRunes))
	}

	out, err := g.call(ctx, "draft",
		[]llm.Message{{Role: llm.RoleUser, Content: prompt.String(), Attachments: toLLMAttachments(req.Attachments)}},
		llm.WithModel(g.cfg.QualityModel),
		llm.WithSystemInstruction(constant.SystemInstructionEditor),
		llm.WithTools(llm.Tools{Search: req.Search, Maps: req.Maps}),
	)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: empty draft", ErrMalformedOutput)
	}
	return out, nil
}

func (g *llmGenerator) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" && len(req.Attachments) == 0 {
		return "", ErrEmptyPrompt
	}

	system := fmt.Sprintf(constant.SystemInstructionChat, truncateRunes(req.DocumentContext, ChatContextMaxRunes))
	if req.Expert != nil {
		system += fmt.Sprintf(constant.ExpertLensBlock, req.Expert.Name, req.Expert.Prompt)
	}

	history := make([]llm.Message, 0, len(req.History)+1)
	for _, msg := range req.History {
		role := llm.RoleUser
		if msg.Role == entity.ChatRoleModel {
			role = llm.RoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: msg.Text})
	}
	history = append(history, llm.Message{
		Role:        llm.RoleUser,
		Content:     req.Message,
		Attachments: toLLMAttachments(req.Attachments),
	})

	out, err := g.call(ctx, "chat", history,
		llm.WithModel(g.cfg.QualityModel),
		llm.WithSystemInstruction(system),
		llm.WithThinking(req.Thinking),
	)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(out) == "" {
		return constant.ChatEmptyReply, nil
	}
	return out, nil
}

type goalPayload struct {
	Suggestions []entity.GoalSuggestion `json:"suggestions"`
}

func (g *llmGenerator) RefineGoal(ctx context.Context, goal string) ([]entity.GoalSuggestion, error) {
	if strings.TrimSpace(goal) == "" {
		return nil, ErrEmptyPrompt
	}

	raw, err := g.call(ctx, "refine_goal",
		[]llm.Message{{Role: llm.RoleUser, Content: fmt.Sprintf(constant.GoalRefinePrompt, goal)}},
		llm.WithModel(g.cfg.FastModel),
		llm.WithSystemInstruction(constant.SystemInstructionGoalCoach),
		llm.WithJSONOutput(),
	)
	if err != nil {
		return nil, err
	}

	var payload goalPayload
	if err := json.Unmarshal(cleanJSON(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	suggestions := make([]entity.GoalSuggestion, 0, len(payload.Suggestions))
	for _, s := range payload.Suggestions {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

func writingContextBlock(wc entity.WritingContext) string {
	return fmt.Sprintf(constant.WritingContextBlock,
		orDefault(wc.Audience, "General"),
		orDefault(wc.Tone, "Neutral"),
		orDefault(wc.Goal, "Inform"),
		orDefault(wc.Format, "Free-form"),
	)
}

func toLLMAttachments(attachments []entity.Attachment) []llm.Attachment {
	if len(attachments) == 0 {
		return nil
	}
	out := make([]llm.Attachment, len(attachments))
	for i, a := range attachments {
		out[i] = llm.Attachment{Name: a.Name, MimeType: a.MimeType, Data: a.Data}
	}
	return out
}

// cleanJSON strips the markdown fences some models wrap around JSON.
func cleanJSON(raw string) []byte {
	b := bytes.TrimSpace([]byte(raw))
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
