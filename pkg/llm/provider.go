package llm

import (
	"context"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role        string // "user", "assistant", "system"
	Content     string
	Attachments []Attachment
}

// Attachment is a named, typed byte blob sent alongside a message.
type Attachment struct {
	Name     string
	MimeType string
	Data     []byte
}

func (a Attachment) IsImage() bool {
	return len(a.MimeType) > 6 && a.MimeType[:6] == "image/"
}

// Tools are optional grounding capabilities the model may use.
type Tools struct {
	Search bool
	Maps   bool
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature       float64
	MaxTokens         int
	Model             string // Override default model
	SystemInstruction string
	JSONOutput        bool
	Thinking          bool
	Tools             Tools
}

func NewOptions(opts ...Option) *Options {
	options := &Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystemInstruction(instruction string) Option {
	return func(o *Options) {
		o.SystemInstruction = instruction
	}
}

// WithJSONOutput asks the backend to answer with a single JSON document.
func WithJSONOutput() Option {
	return func(o *Options) {
		o.JSONOutput = true
	}
}

func WithThinking(enabled bool) Option {
	return func(o *Options) {
		o.Thinking = enabled
	}
}

func WithTools(tools Tools) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
