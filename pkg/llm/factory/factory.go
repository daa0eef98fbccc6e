package factory

import (
	"ai-writing-be/pkg/llm"
	"ai-writing-be/pkg/llm/gemini"
	"ai-writing-be/pkg/llm/huggingface"
	"ai-writing-be/pkg/llm/ollama"
	"context"
	"fmt"
)

type ProviderConfig struct {
	Type      string // "gemini", "ollama" or "huggingface"
	ModelName string
	BaseURL   string
	APIKey    string
}

func NewLLMProvider(ctx context.Context, cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Type {
	case "gemini", "":
		return gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.ModelName)
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.ModelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.ModelName)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Type)
	}
}
