package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mode is the audience mode of a presentation session. It controls prompt
// context for the AI stages and the final score adjustment.
type Mode string

const (
	ModeProfessional Mode = "professional"
	ModeTechnical    Mode = "technical"
	ModeLayperson    Mode = "layperson"
	ModeCasual       Mode = "casual"
	ModeCustom       Mode = "custom"
)

// ParseMode validates a raw mode string against the closed set.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeProfessional, ModeTechnical, ModeLayperson, ModeCasual, ModeCustom:
		return Mode(raw), nil
	}
	return "", fmt.Errorf("unknown presentation mode: %q", raw)
}

// DeliveryMetrics captures the speech mechanics of one analyzed chunk.
// Immutable once produced.
type DeliveryMetrics struct {
	Transcription      string   `json:"transcription"`
	Language           string   `json:"language"`
	Pace               float64  `json:"pace"` // words per minute
	Tone               float64  `json:"tone"` // average pitch, Hz
	FillerWords        []string `json:"filler_words"`
	FillerCount        int      `json:"filler_count"`
	IntonationVariance float64  `json:"intonation_variance"`
	ClarityScore       float64  `json:"clarity_score"` // 0..1
}

// ContentMetrics captures transcript quality for one analyzed chunk.
// All scalars are in 0..1. Immutable once produced.
type ContentMetrics struct {
	ClarityScore          float64  `json:"clarity_score"`
	FlowScore             float64  `json:"flow_score"`
	TechnicalAccuracy     float64  `json:"technical_accuracy"`
	ExplanationQuality    float64  `json:"explanation_quality"`
	SuggestedImprovements []string `json:"suggested_improvements"`
}

// Score is the per-chunk aggregate appended to the session history.
type Score struct {
	OverallScore float64         `json:"overall_score"`
	Delivery     DeliveryMetrics `json:"audio_metrics"`
	Content      ContentMetrics  `json:"content_analysis"`
	Mode         Mode            `json:"mode"`
	Topic        string          `json:"topic"`
	CreatedAt    time.Time       `json:"timestamp"`
}

// Question is a comprehension question generated from a transcript chunk.
type Question struct {
	Question   string `json:"question"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Context    string `json:"context,omitempty"`
}

// SuggestionKind enumerates the clarity-improvement suggestion flavors.
type SuggestionKind string

const (
	SuggestionMetaphor  SuggestionKind = "metaphor"
	SuggestionAnalogy   SuggestionKind = "analogy"
	SuggestionVisualAid SuggestionKind = "visual_aid"
)

// Suggestion is a clarity-improvement idea tied to one unclear sentence.
type Suggestion struct {
	Kind       SuggestionKind `json:"type"`
	Suggestion string         `json:"suggestion"`
	Context    string         `json:"context"` // the sentence it responds to
	Confidence float64        `json:"confidence"`
}

// Session is a rehearsal session. The id is assigned at creation and never
// changes. History slices are append-only; the store serializes mutation.
type Session struct {
	Id              uuid.UUID    `json:"session_id"`
	Mode            Mode         `json:"mode"`
	Topic           string       `json:"topic"`
	CustomContext   string       `json:"custom_context,omitempty"`
	ExpertDocuments []string     `json:"expert_documents,omitempty"`
	Scores          []Score      `json:"scores"`
	Questions       []Question   `json:"questions"`
	Suggestions     []Suggestion `json:"suggestions"`
	CreatedAt       time.Time    `json:"created_at"`
}

// SessionConfig is the immutable slice of session state the analysis stages
// need. Snapshot taken under the store lock so stages never race appends.
type SessionConfig struct {
	Id              uuid.UUID
	Mode            Mode
	Topic           string
	CustomContext   string
	ExpertDocuments []string
}
