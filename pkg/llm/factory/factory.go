package factory

import (
	"fmt"

	"ai-notes-be/pkg/llm"
	"ai-notes-be/pkg/llm/ollama"
	"ai-notes-be/pkg/llm/openaicompat"
)

// NewLLMProvider selects a chat backend. An empty API key for the hosted
// provider is a configuration error, not a construction-time fatal: the
// caller decides whether to run without AI features.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.Provider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("AI API key not configured")
		}
		return openaicompat.NewProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
