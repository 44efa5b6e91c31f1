package factory

import (
	"fmt"

	"coverletter-ai-be/pkg/llm"
	"coverletter-ai-be/pkg/llm/ollama"
	"coverletter-ai-be/pkg/llm/openrouter"
)

func NewLLMProvider(providerType, apiKey, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "openrouter", "":
		return openrouter.NewOpenRouterProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
