package analysis

import (
	"context"

	"ai-presentation-coach-be/internal/model"
)

// The five analysis capabilities the orchestrator fans out to. Each is a
// narrow contract with pluggable backends; the orchestrator owns fallback
// behavior when a call fails.

// Transcriber converts a raw audio chunk into text plus a language tag.
type Transcriber interface {
	Transcribe(ctx context.Context, pcm []byte) (text string, language string, err error)
}

// DeliveryAnalyzer measures speech mechanics for one chunk. The transcript,
// when already known, improves the pace estimate.
type DeliveryAnalyzer interface {
	Measure(ctx context.Context, pcm []byte, transcript string) (model.DeliveryMetrics, error)
}

// ContentAnalyzer rates transcript quality for the session's topic and mode.
type ContentAnalyzer interface {
	Assess(ctx context.Context, transcript string, cfg model.SessionConfig) (model.ContentMetrics, error)
}

// QuestionGenerator produces comprehension questions for a transcript chunk.
type QuestionGenerator interface {
	Generate(ctx context.Context, transcript string, cfg model.SessionConfig) ([]model.Question, error)
}

// SuggestionGenerator produces clarity-improvement suggestions for one
// unclear sentence, one call per suggestion kind.
type SuggestionGenerator interface {
	Generate(ctx context.Context, sentence string, kind model.SuggestionKind, cfg model.SessionConfig) ([]model.Suggestion, error)
}

// FallbackContentMetrics is the documented neutral default substituted when
// the content stage fails: mid-scale scalars and a placeholder remark.
func FallbackContentMetrics() model.ContentMetrics {
	return model.ContentMetrics{
		ClarityScore:          0.5,
		FlowScore:             0.5,
		TechnicalAccuracy:     0.5,
		ExplanationQuality:    0.5,
		SuggestedImprovements: []string{"Analysis unavailable"},
	}
}

// FallbackDeliveryMetrics is the neutral default when the delivery stage
// fails: zeroed measurements with an empty filler list.
func FallbackDeliveryMetrics() model.DeliveryMetrics {
	return model.DeliveryMetrics{FillerWords: []string{}}
}
