package analysis

import (
	"context"
	"testing"

	"ai-presentation-coach-be/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSuggestionsTagsKindAndContext(t *testing.T) {
	provider := &fakeProvider{reply: `{
		"suggestions": [
			{"suggestion": "Think of it as a postal sorting office", "explanation": "Familiar process", "confidence": 0.8},
			{"suggestion": "Like lanes on a highway", "explanation": "Everyday image", "confidence": 0.6}
		]
	}`}
	g := NewLLMSuggestionGenerator(provider)

	sentence := "The scheduler is kind of like a traffic cop"
	got, err := g.Generate(context.Background(), sentence, model.SuggestionMetaphor, testConfig(model.ModeLayperson))

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	for _, s := range got {
		assert.Equal(t, model.SuggestionMetaphor, s.Kind)
		assert.Equal(t, sentence, s.Context)
	}
	assert.Equal(t, 0.8, got[0].Confidence)
	assert.Contains(t, provider.lastPrompt, sentence)
	assert.Contains(t, provider.lastPrompt, "metaphors")
	assert.Equal(t, 0.8, provider.lastOpts.Temperature)
}

func TestSuggestionTemperaturePerKind(t *testing.T) {
	tests := []struct {
		kind     model.SuggestionKind
		wantTemp float64
		wantSub  string
	}{
		{model.SuggestionMetaphor, 0.8, "metaphors"},
		{model.SuggestionAnalogy, 0.8, "analogies"},
		{model.SuggestionVisualAid, 0.7, "visual aids"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			provider := &fakeProvider{reply: `{"suggestions": []}`}
			g := NewLLMSuggestionGenerator(provider)

			_, err := g.Generate(context.Background(), "s", tt.kind, testConfig(model.ModeCasual))
			assert.NoError(t, err)
			assert.Equal(t, tt.wantTemp, provider.lastOpts.Temperature)
			assert.Contains(t, provider.lastPrompt, tt.wantSub)
		})
	}
}

func TestGenerateSuggestionsMalformedReply(t *testing.T) {
	provider := &fakeProvider{reply: "no ideas"}
	g := NewLLMSuggestionGenerator(provider)

	_, err := g.Generate(context.Background(), "s", model.SuggestionAnalogy, testConfig(model.ModeCasual))
	assert.Error(t, err)
}
