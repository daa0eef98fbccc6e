package gemini

import (
	"ai-writing-be/pkg/llm"
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	providerName   = "gemini"
	thinkingBudget = 32768
)

// contentGenerator is the slice of *genai.Models the provider needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiProvider struct {
	models    contentGenerator
	ModelName string
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, llm.NewError(providerName, llm.KindUnavailable, errors.New("google API key not configured"))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, llm.NewError(providerName, llm.KindUnavailable, fmt.Errorf("create client: %w", err))
	}

	return &GeminiProvider{models: client.Models, ModelName: modelName}, nil
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.NewOptions(opts...)

	model := g.ModelName
	if options.Model != "" {
		model = options.Model
	}

	resp, err := g.models.GenerateContent(ctx, model, toContents(history), buildConfig(options))
	if err != nil {
		return "", classify(err)
	}

	text := responseText(resp)
	if text == "" && options.JSONOutput {
		return "", llm.NewError(providerName, llm.KindMalformedOutput, errors.New("empty response"))
	}
	return text, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func buildConfig(options *llm.Options) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if options.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(options.SystemInstruction, genai.RoleUser)
	}

	temp := float32(options.Temperature)
	config.Temperature = &temp

	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}

	if options.JSONOutput {
		config.ResponseMIMEType = "application/json"
	}

	if options.Thinking {
		budget := int32(thinkingBudget)
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}

	if options.Tools.Search {
		config.Tools = append(config.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	if options.Tools.Maps {
		config.Tools = append(config.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
	}

	return config
}

func toContents(history []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		if msg.Role == llm.RoleSystem {
			continue
		}

		role := genai.RoleUser
		if msg.Role == llm.RoleAssistant || msg.Role == "model" {
			role = genai.RoleModel
		}

		parts := []*genai.Part{{Text: msg.Content}}
		for _, att := range msg.Attachments {
			if att.IsImage() {
				parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: att.MimeType, Data: att.Data}})
				continue
			}
			parts = append(parts, &genai.Part{Text: fmt.Sprintf("\n\n[Attachment: %s]\n%s", att.Name, string(att.Data))})
		}

		contents = append(contents, &genai.Content{Role: role, Parts: parts})
	}
	return contents
}

// responseText joins the non-thought text parts of every candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text == "" || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func classify(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	default:
		return llm.ClassifyTransport(providerName, err)
	}

	return &llm.Error{
		Kind:       llm.KindFromStatus(code),
		Provider:   providerName,
		StatusCode: code,
		Err:        err,
	}
}
