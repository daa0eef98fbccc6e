package factory

import (
	"ai-writing-be/pkg/llm"
	"ai-writing-be/pkg/llm/huggingface"
	"ai-writing-be/pkg/llm/ollama"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProviderOllamaDefaultsBaseURL(t *testing.T) {
	p, err := NewLLMProvider(context.Background(), ProviderConfig{Type: "ollama", ModelName: "llama3"})

	require.NoError(t, err)
	op, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", op.BaseURL)
}

func TestNewLLMProviderHuggingFace(t *testing.T) {
	p, err := NewLLMProvider(context.Background(), ProviderConfig{Type: "huggingface", ModelName: "qwen", APIKey: "hf_token"})

	require.NoError(t, err)
	hp, ok := p.(*huggingface.HuggingFaceProvider)
	require.True(t, ok)
	assert.Equal(t, huggingface.DefaultBaseURL, hp.BaseURL)
	assert.Equal(t, "qwen", hp.ModelName)

	_, err = NewLLMProvider(context.Background(), ProviderConfig{Type: "huggingface"})
	assert.Equal(t, llm.KindUnavailable, llm.KindOf(err))
}

func TestNewLLMProviderGeminiWithoutKey(t *testing.T) {
	_, err := NewLLMProvider(context.Background(), ProviderConfig{Type: "gemini"})

	assert.Equal(t, llm.KindUnavailable, llm.KindOf(err))
}

func TestNewLLMProviderUnknown(t *testing.T) {
	_, err := NewLLMProvider(context.Background(), ProviderConfig{Type: "openai"})

	assert.Error(t, err)
}

func TestUnavailableProviderKeepsKind(t *testing.T) {
	_, err := NewLLMProvider(context.Background(), ProviderConfig{Type: "gemini"})
	require.Error(t, err)

	p := llm.NewUnavailableProvider(err)
	_, err = p.Generate(context.Background(), "hello")
	assert.Equal(t, llm.KindUnavailable, llm.KindOf(err))
}
