package factory

import (
	"fmt"

	"ai-presentation-coach-be/pkg/llm"
	"ai-presentation-coach-be/pkg/llm/ollama"
	"ai-presentation-coach-be/pkg/llm/openai"
)

const grokBaseURL = "https://api.x.ai/v1"

// NewLLMProvider selects the chat backend by configuration. "grok" rides the
// OpenAI-compatible provider with the xAI endpoint.
func NewLLMProvider(providerType, modelName, ollamaBaseURL, openAIKey, xaiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewProvider(openai.DefaultBaseURL, openAIKey, modelName), nil
	case "grok":
		if xaiKey == "" {
			return nil, fmt.Errorf("grok provider requires XAI_API_KEY")
		}
		return openai.NewProvider(grokBaseURL, xaiKey, modelName), nil
	case "ollama":
		return ollama.NewProvider(ollamaBaseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
