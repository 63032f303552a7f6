package llm

import (
	"fmt"

	"github.com/mindfold-ai/mindfold/internal/domain"
)

// Provider constants
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// Options configures an oracle client.
type Options struct {
	Endpoint string
	Model    string
	APIKey   string
}

// NewClient creates a reasoning oracle based on the provider name.
// Returns an error if the provider is unknown or a required credential
// is missing (except for mock).
func NewClient(provider string, opts Options) (domain.Oracle, error) {
	switch provider {
	case ProviderOllama:
		if opts.Endpoint == "" {
			return nil, fmt.Errorf("endpoint is required for Ollama provider")
		}
		return NewOllamaClient(opts.Endpoint, opts.Model), nil

	case ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIClient(opts.APIKey, opts.Model), nil

	case ProviderMock:
		return NewMockOracle(), nil

	default:
		return nil, fmt.Errorf("unknown oracle provider: %s (valid options: ollama, openai, mock)", provider)
	}
}
