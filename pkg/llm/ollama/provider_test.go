package ollama

import (
	"ai-writing-be/pkg/llm"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendsSystemInstructionAndJSONFormat(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: `{"hasSuggestion":false}`},
			Done:    true,
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: "model", Content: "earlier answer"},
		{Role: llm.RoleUser, Content: "look", Attachments: []llm.Attachment{
			{Name: "notes.txt", MimeType: "text/plain", Data: []byte("remember this")},
			{Name: "a.png", MimeType: "image/png", Data: []byte{1, 2, 3}},
		}},
	}, llm.WithSystemInstruction("be terse"), llm.WithJSONOutput(), llm.WithModel("qwen"))

	require.NoError(t, err)
	assert.Equal(t, `{"hasSuggestion":false}`, out)
	assert.Equal(t, "qwen", got.Model)
	assert.Equal(t, "json", got.Format)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, llm.RoleSystem, got.Messages[0].Role)
	assert.Equal(t, llm.RoleAssistant, got.Messages[1].Role)
	assert.Contains(t, got.Messages[2].Content, "[Attachment: notes.txt]\nremember this")
	assert.Equal(t, [][]byte{{1, 2, 3}}, got.Messages[2].Images)
}

func TestChatClassifiesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "hi")

	require.Error(t, err)
	assert.Equal(t, llm.KindRateLimited, llm.KindOf(err))
	assert.True(t, llm.IsRetryable(err))
}

func TestChatMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "hi")

	assert.Equal(t, llm.KindMalformedOutput, llm.KindOf(err))
}
