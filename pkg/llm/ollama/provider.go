package ollama

import (
	"ai-writing-be/pkg/llm"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const providerName = "ollama"

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements LLMProvider
var _ llm.LLMProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  [][]byte `json:"images,omitempty"` // encoding/json emits base64
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// --- Interface Implementation ---

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.NewOptions(opts...)

	reqPayload := ollamaChatRequest{
		Model:    o.ModelName,
		Messages: toOllamaMessages(options.SystemInstruction, history),
		Stream:   false,
		Options: &ollamaOptions{
			Temperature: options.Temperature,
			NumPredict:  options.MaxTokens,
		},
	}
	if options.Model != "" {
		reqPayload.Model = options.Model
	}
	if options.JSONOutput {
		reqPayload.Format = "json"
	}
	// Ollama has no hosted search or maps grounding; tools are ignored.

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", llm.NewError(providerName, llm.KindInvalidRequest, fmt.Errorf("marshal request: %w", err))
	}

	url := o.BaseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", llm.NewError(providerName, llm.KindInvalidRequest, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
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

	var ollamaResp ollamaChatResponse
	if err := json.Unmarshal(bodyBytes, &ollamaResp); err != nil {
		return "", llm.NewError(providerName, llm.KindMalformedOutput, fmt.Errorf("unmarshal response: %w", err))
	}

	return ollamaResp.Message.Content, nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return o.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func toOllamaMessages(system string, history []llm.Message) []ollamaMessage {
	messages := make([]ollamaMessage, 0, len(history)+1)
	if system != "" {
		messages = append(messages, ollamaMessage{Role: llm.RoleSystem, Content: system})
	}

	for _, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}

		out := ollamaMessage{Role: role, Content: msg.Content}
		for _, att := range msg.Attachments {
			if att.IsImage() {
				out.Images = append(out.Images, att.Data)
				continue
			}
			out.Content += fmt.Sprintf("\n\n[Attachment: %s]\n%s", att.Name, string(att.Data))
		}
		messages = append(messages, out)
	}
	return messages
}
