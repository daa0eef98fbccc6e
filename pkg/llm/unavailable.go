package llm

import "context"

// unavailableProvider stands in for a backend that could not be configured.
// Every call fails with the configuration error so the server can still
// start and edit documents without AI features.
type unavailableProvider struct {
	err error
}

func NewUnavailableProvider(err error) LLMProvider {
	return &unavailableProvider{err: err}
}

func (p *unavailableProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return "", p.err
}

func (p *unavailableProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return "", p.err
}
