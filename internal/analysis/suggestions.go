package analysis

import (
	"context"
	"fmt"

	"ai-presentation-coach-be/internal/model"
	"ai-presentation-coach-be/pkg/llm"
)

// LLMSuggestionGenerator asks the chat backend for clarity-improvement ideas
// of a single kind for a single unclear sentence.
type LLMSuggestionGenerator struct {
	provider llm.LLMProvider
}

var _ SuggestionGenerator = &LLMSuggestionGenerator{}

func NewLLMSuggestionGenerator(provider llm.LLMProvider) *LLMSuggestionGenerator {
	return &LLMSuggestionGenerator{provider: provider}
}

type suggestionsResult struct {
	Suggestions []struct {
		Suggestion  string  `json:"suggestion"`
		Explanation string  `json:"explanation"`
		Confidence  float64 `json:"confidence"`
	} `json:"suggestions"`
}

func (g *LLMSuggestionGenerator) Generate(ctx context.Context, sentence string, kind model.SuggestionKind, cfg model.SessionConfig) ([]model.Suggestion, error) {
	task, temperature := suggestionTask(kind)

	prompt := fmt.Sprintf(`The speaker said: "%s"

Topic: %s
Mode: %s

%s

Format as JSON:
{
    "suggestions": [
        {
            "suggestion": "...",
            "explanation": "Why this works",
            "confidence": 0.8
        }
    ]
}`, sentence, cfg.Topic, cfg.Mode, task)

	reply, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(temperature))
	if err != nil {
		return nil, fmt.Errorf("%s suggestion call: %w", kind, err)
	}

	var result suggestionsResult
	if err := decodeModelJSON(reply, &result); err != nil {
		return nil, fmt.Errorf("%s suggestion reply: %w", kind, err)
	}

	suggestions := make([]model.Suggestion, 0, len(result.Suggestions))
	for _, s := range result.Suggestions {
		suggestions = append(suggestions, model.Suggestion{
			Kind:       kind,
			Suggestion: s.Suggestion,
			Context:    sentence,
			Confidence: s.Confidence,
		})
	}
	return suggestions, nil
}

func suggestionTask(kind model.SuggestionKind) (task string, temperature float64) {
	switch kind {
	case model.SuggestionMetaphor:
		return "Suggest 2-3 creative metaphors that could help explain this concept more clearly.\nConsider the audience level and context.", 0.8
	case model.SuggestionAnalogy:
		return "Suggest 2-3 analogies that could help explain this concept more clearly.\nUse familiar, everyday examples that the audience can relate to.", 0.8
	case model.SuggestionVisualAid:
		return "Suggest 2-3 types of images, diagrams, or visual aids that could help explain this concept.\nBe specific about what the visual should show.", 0.7
	}
	return "Suggest 2-3 ways to explain this concept more clearly.", 0.7
}
