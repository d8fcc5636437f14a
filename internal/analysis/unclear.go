package analysis

import (
	"regexp"
	"strings"
)

// Hedging phrases that flag a sentence as an unclear explanation. A match
// gates the suggestion stage for that sentence.
var unclearIndicators = []string{
	"it's complicated",
	"hard to explain",
	"difficult to understand",
	"not sure how to put this",
	"kind of like",
	"sort of",
	"basically",
	"you know what i mean",
}

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// DetectUnclearPassages returns the transcript sentences containing a hedging
// phrase. Deterministic and local; no collaborator involved.
func DetectUnclearPassages(transcript string) []string {
	var unclear []string
	for _, sentence := range sentenceSplitter.Split(transcript, -1) {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, indicator := range unclearIndicators {
			if strings.Contains(lower, indicator) {
				unclear = append(unclear, trimmed)
				break
			}
		}
	}
	return unclear
}
