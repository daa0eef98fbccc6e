package huggingface

import (
	"ai-writing-be/pkg/llm"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	providerName   = "huggingface"
	DefaultBaseURL = "https://router.huggingface.co/v1"
)

type HuggingFaceProvider struct {
	apiKey    string
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = &HuggingFaceProvider{}

func NewHuggingFaceProvider(apiKey, baseURL, modelName string) (*HuggingFaceProvider, error) {
	if apiKey == "" {
		return nil, llm.NewError(providerName, llm.KindUnavailable, errors.New("hugging face API key not configured"))
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HuggingFaceProvider{
		apiKey:    apiKey,
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Request Payload Structure (OpenAI Compatible)
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *HuggingFaceProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.NewOptions(opts...)

	reqBody := chatRequest{
		Model:       p.ModelName,
		Messages:    toChatMessages(options.SystemInstruction, history),
		MaxTokens:   options.MaxTokens,
		Temperature: options.Temperature,
	}
	if options.Model != "" {
		reqBody.Model = options.Model
	}
	if options.JSONOutput {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", llm.NewError(providerName, llm.KindInvalidRequest, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", llm.NewError(providerName, llm.KindInvalidRequest, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", llm.ClassifyTransport(providerName, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", llm.NewError(providerName, llm.KindTransient, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", &llm.Error{
			Kind:       llm.KindFromStatus(resp.StatusCode),
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("body: %s", string(bodyBytes)),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", llm.NewError(providerName, llm.KindMalformedOutput, fmt.Errorf("unmarshal response: %w", err))
	}
	if chatResp.Error != nil {
		return "", llm.NewError(providerName, llm.KindUnknown, errors.New(chatResp.Error.Message))
	}
	if len(chatResp.Choices) == 0 {
		return "", llm.NewError(providerName, llm.KindMalformedOutput, errors.New("empty choices"))
	}

	return chatResp.Choices[0].Message.Content, nil
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// toChatMessages flattens attachments into text; the router accepts text
// content only.
func toChatMessages(system string, history []llm.Message) []chatMessage {
	messages := make([]chatMessage, 0, len(history)+1)
	if system != "" {
		messages = append(messages, chatMessage{Role: llm.RoleSystem, Content: system})
	}

	for _, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}

		content := msg.Content
		for _, att := range msg.Attachments {
			if att.IsImage() {
				content += fmt.Sprintf("\n\n[Image attachment omitted: %s]", att.Name)
				continue
			}
			content += fmt.Sprintf("\n\n[Attachment: %s]\n%s", att.Name, string(att.Data))
		}
		messages = append(messages, chatMessage{Role: role, Content: content})
	}
	return messages
}
