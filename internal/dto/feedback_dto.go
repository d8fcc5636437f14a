package dto

import "ai-presentation-coach-be/internal/model"

// ChunkFeedback is the single combined message emitted to the client after
// each analyzed chunk: the transcript, the chunk's score and the most recent
// questions and suggestions accumulated so far in the session.
type ChunkFeedback struct {
	Transcript  string             `json:"transcript"`
	Language    string             `json:"language,omitempty"`
	Score       model.Score        `json:"score"`
	Questions   []model.Question   `json:"questions"`
	Suggestions []model.Suggestion `json:"suggestions"`
}

type AnalyzeTextResponse struct {
	Score model.Score `json:"score"`
}
