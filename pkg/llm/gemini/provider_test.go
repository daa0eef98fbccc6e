package gemini

import (
	"ai-writing-be/pkg/llm"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: genai.RoleModel, Parts: parts}}},
	}
}

func TestChatBuildsRequest(t *testing.T) {
	fake := &fakeModels{resp: textResponse(
		&genai.Part{Text: "thinking...", Thought: true},
		&genai.Part{Text: "Hello "},
		&genai.Part{Text: "there"},
	)}
	p := &GeminiProvider{models: fake, ModelName: "flash"}

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: "model", Content: "hi"},
		{Role: llm.RoleUser, Content: "see image", Attachments: []llm.Attachment{
			{Name: "a.png", MimeType: "image/png", Data: []byte{9}},
		}},
	},
		llm.WithModel("pro"),
		llm.WithSystemInstruction("coach"),
		llm.WithJSONOutput(),
		llm.WithThinking(true),
		llm.WithTools(llm.Tools{Search: true}),
	)

	require.NoError(t, err)
	assert.Equal(t, "Hello there", out)
	assert.Equal(t, "pro", fake.model)
	require.Len(t, fake.contents, 2)
	assert.Equal(t, genai.RoleModel, fake.contents[0].Role)
	require.Len(t, fake.contents[1].Parts, 2)
	assert.Equal(t, "image/png", fake.contents[1].Parts[1].InlineData.MIMEType)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.Equal(t, "coach", fake.config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, fake.config.ThinkingConfig)
	require.Len(t, fake.config.Tools, 1)
	assert.NotNil(t, fake.config.Tools[0].GoogleSearch)
}

func TestChatEmptyJSONIsMalformed(t *testing.T) {
	p := &GeminiProvider{models: &fakeModels{resp: textResponse()}, ModelName: "flash"}

	_, err := p.Generate(context.Background(), "x", llm.WithJSONOutput())

	assert.Equal(t, llm.KindMalformedOutput, llm.KindOf(err))
}

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		code int
		want llm.Kind
	}{
		{429, llm.KindRateLimited},
		{503, llm.KindTransient},
		{403, llm.KindUnavailable},
		{400, llm.KindInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			fake := &fakeModels{err: genai.APIError{Code: tt.code, Message: "boom"}}
			p := &GeminiProvider{models: fake, ModelName: "flash"}

			_, err := p.Generate(context.Background(), "x")

			assert.Equal(t, tt.want, llm.KindOf(err))
		})
	}
}

func TestClassifyNonAPIError(t *testing.T) {
	fake := &fakeModels{err: context.DeadlineExceeded}
	p := &GeminiProvider{models: fake, ModelName: "flash"}

	_, err := p.Generate(context.Background(), "x")

	assert.True(t, llm.IsRetryable(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), "", "flash")

	assert.Equal(t, llm.KindUnavailable, llm.KindOf(err))
}
