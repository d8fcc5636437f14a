package dto

import "github.com/google/uuid"

// ChunkAnalyzedMessage is the in-process event published after every
// completed chunk analysis.
type ChunkAnalyzedMessage struct {
	SessionId    uuid.UUID `json:"session_id"`
	OverallScore float64   `json:"overall_score"`
	Mode         string    `json:"mode"`
}
