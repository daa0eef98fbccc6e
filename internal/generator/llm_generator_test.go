package generator

import (
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/pkg/llm"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	replies []string
	errs    []error
	calls   int
	history [][]llm.Message
	options []*llm.Options
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	i := f.calls
	f.calls++
	f.history = append(f.history, history)
	f.options = append(f.options, llm.NewOptions(opts...))

	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return f.replies[len(f.replies)-1], nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func newTestGenerator(p llm.LLMProvider) Generator {
	return NewLLMGenerator(p, Config{
		FastModel:      "fast",
		QualityModel:   "quality",
		MaxRetries:     3,
		RetryBaseDelay: time.Millisecond,
	}, logger.NewNopLogger())
}

var longText = strings.Repeat("The quick brown fox jumps over the lazy dog. ", 3) + "Their is a problem here."

func TestAnalyzeShortTextSkipsModel(t *testing.T) {
	p := &fakeProvider{replies: []string{`{"hasSuggestion":true}`}}

	res, err := newTestGenerator(p).Analyze(context.Background(), "too short", entity.WritingContext{})

	require.NoError(t, err)
	assert.Equal(t, NoSuggestion{}, res)
	assert.Equal(t, 0, p.calls)
}

func TestAnalyzeSubstitution(t *testing.T) {
	p := &fakeProvider{replies: []string{"```json\n" +
		`{"hasSuggestion":true,"originalText":"Their is","suggestedText":"There is","reason":"homophone","type":"grammar"}` +
		"\n```"}}

	res, err := newTestGenerator(p).Analyze(context.Background(), longText, entity.WritingContext{Audience: "Kids"})

	require.NoError(t, err)
	assert.Equal(t, Substitution{Original: "Their is", Replacement: "There is", Reason: "homophone", Kind: entity.SuggestionGrammar}, res)
	opts := p.options[0]
	assert.True(t, opts.JSONOutput)
	assert.Equal(t, "fast", opts.Model)
	assert.Contains(t, p.history[0][0].Content, "Target Audience: Kids")
	assert.Contains(t, p.history[0][0].Content, "Desired Tone: Neutral")
}

func TestParseAnalysis(t *testing.T) {
	input := "Alpha beta gamma."

	tests := []struct {
		name    string
		raw     string
		want    AnalysisResult
		wantErr bool
	}{
		{"no suggestion", `{"hasSuggestion":false}`, NoSuggestion{}, false},
		{"advisory", `{"hasSuggestion":true,"reason":"Add a conclusion","type":"structure"}`, Advisory{Reason: "Add a conclusion", Kind: entity.SuggestionStructure}, false},
		{"not verbatim", `{"hasSuggestion":true,"originalText":"Delta","suggestedText":"Epsilon","type":"style"}`, NoSuggestion{}, false},
		{"identity edit", `{"hasSuggestion":true,"originalText":"beta","suggestedText":"beta","type":"style"}`, NoSuggestion{}, false},
		{"unknown type", `{"hasSuggestion":true,"originalText":"beta","suggestedText":"b","type":"vibes"}`, NoSuggestion{}, true},
		{"missing replacement", `{"hasSuggestion":true,"originalText":"beta","type":"flow"}`, NoSuggestion{}, true},
		{"advisory without reason", `{"hasSuggestion":true,"type":"idea"}`, NoSuggestion{}, true},
		{"not json", `I think it's great`, NoSuggestion{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnalysis(tt.raw, input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedOutput)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzeRetriesRateLimit(t *testing.T) {
	rateLimited := llm.NewError("fake", llm.KindRateLimited, errors.New("429"))
	p := &fakeProvider{
		errs:    []error{rateLimited, rateLimited},
		replies: []string{"", "", `{"hasSuggestion":false}`},
	}

	res, err := newTestGenerator(p).Analyze(context.Background(), longText, entity.WritingContext{})

	require.NoError(t, err)
	assert.Equal(t, NoSuggestion{}, res)
	assert.Equal(t, 3, p.calls)
}

func TestRewriteDoesNotRetryUnavailable(t *testing.T) {
	p := &fakeProvider{errs: []error{llm.NewError("fake", llm.KindUnavailable, errors.New("no key"))}, replies: []string{""}}

	_, err := newTestGenerator(p).RewriteSpan(context.Background(), "text", "shorter", "doc")

	assert.Equal(t, llm.KindUnavailable, llm.KindOf(err))
	assert.Equal(t, 1, p.calls)
}

func TestRewriteSpanTruncatesContext(t *testing.T) {
	p := &fakeProvider{replies: []string{"  tighter text \n"}}
	doc := strings.Repeat("x", RewriteContextRunes+500)

	out, err := newTestGenerator(p).RewriteSpan(context.Background(), "loose text", "tighten", doc)

	require.NoError(t, err)
	assert.Equal(t, "tighter text", out)
	prompt := p.history[0][0].Content
	assert.Contains(t, prompt, strings.Repeat("x", RewriteContextRunes)+"...")
	assert.NotContains(t, prompt, strings.Repeat("x", RewriteContextRunes+1))
}

func TestRewriteSpanEmptyOutputIsMalformed(t *testing.T) {
	p := &fakeProvider{replies: []string{"   "}}

	_, err := newTestGenerator(p).RewriteSpan(context.Background(), "a", "b", "c")

	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestDraftUsesQualityModelToolsAndExpert(t *testing.T) {
	p := &fakeProvider{replies: []string{"Once upon a time"}}
	expert := &entity.ExpertPrompt{Id: "muse", Name: "The Muse", Prompt: "Brainstorm."}

	out, err := newTestGenerator(p).Draft(context.Background(), DraftRequest{
		Prompt:      "Write an opening",
		Attachments: []entity.Attachment{{Name: "n.txt", MimeType: "text/plain", Data: []byte("hi")}},
		Search:      true,
		Expert:      expert,
	})

	require.NoError(t, err)
	assert.Equal(t, "Once upon a time", out)
	opts := p.options[0]
	assert.Equal(t, "quality", opts.Model)
	assert.True(t, opts.Tools.Search)
	assert.False(t, opts.Tools.Maps)
	msg := p.history[0][0]
	assert.Contains(t, msg.Content, "EXPERT LENS (The Muse)")
	require.Len(t, msg.Attachments, 1)
}

func TestDraftEmptyPrompt(t *testing.T) {
	_, err := newTestGenerator(&fakeProvider{replies: []string{"x"}}).Draft(context.Background(), DraftRequest{Prompt: " "})

	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestChatMapsHistory(t *testing.T) {
	p := &fakeProvider{replies: []string{"Sure."}}

	out, err := newTestGenerator(p).Chat(context.Background(), ChatRequest{
		History: []entity.ChatMessage{
			{Role: entity.ChatRoleUser, Text: "hi"},
			{Role: entity.ChatRoleModel, Text: "hello"},
		},
		Message:         "help",
		DocumentContext: "My essay",
		Thinking:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Sure.", out)
	h := p.history[0]
	require.Len(t, h, 3)
	assert.Equal(t, llm.RoleAssistant, h[1].Role)
	assert.Equal(t, "help", h[2].Content)
	assert.Contains(t, p.options[0].SystemInstruction, `"""My essay"""`)
	assert.True(t, p.options[0].Thinking)
}

func TestRefineGoal(t *testing.T) {
	p := &fakeProvider{replies: []string{`{"suggestions":[{"text":"Persuade CFOs","explanation":"narrower"},{"text":"","explanation":"junk"}]}`}}

	got, err := newTestGenerator(p).RefineGoal(context.Background(), "persuade")

	require.NoError(t, err)
	assert.Equal(t, []entity.GoalSuggestion{{Text: "Persuade CFOs", Explanation: "narrower"}}, got)
}

func TestRefineGoalMalformed(t *testing.T) {
	p := &fakeProvider{replies: []string{`nope`}}

	_, err := newTestGenerator(p).RefineGoal(context.Background(), "persuade")

	assert.ErrorIs(t, err, ErrMalformedOutput)
}

func TestToSuggestion(t *testing.T) {
	assert.Nil(t, ToSuggestion(NoSuggestion{}, "x"))

	s := ToSuggestion(Advisory{Reason: "r", Kind: entity.SuggestionIdea}, "id1")
	require.NotNil(t, s)
	assert.True(t, s.IsAdvisory())
	assert.Equal(t, "id1", s.Id)
}
