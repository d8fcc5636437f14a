package analysis

import (
	"reflect"
	"testing"
)

func TestDetectUnclearPassages(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       []string
	}{
		{
			name:       "clear transcript",
			transcript: "Our revenue grew by ten percent. The new product line drove most of it.",
			want:       nil,
		},
		{
			name:       "single hedging phrase",
			transcript: "The cache works fine. The eviction policy is kind of like a queue. We ship next week.",
			want:       []string{"The eviction policy is kind of like a queue"},
		},
		{
			name:       "case insensitive match",
			transcript: "BASICALLY we rewrote the whole thing!",
			want:       []string{"BASICALLY we rewrote the whole thing"},
		},
		{
			name:       "multiple unclear sentences",
			transcript: "It's complicated to set up. The design is sort of layered. All tests pass.",
			want:       []string{"It's complicated to set up", "The design is sort of layered"},
		},
		{
			name:       "one sentence reported once despite two indicators",
			transcript: "Basically it is hard to explain.",
			want:       []string{"Basically it is hard to explain"},
		},
		{
			name:       "empty transcript",
			transcript: "",
			want:       nil,
		},
		{
			name:       "punctuation only",
			transcript: "...!?",
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectUnclearPassages(tt.transcript)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectUnclearPassages() = %v, want %v", got, tt.want)
			}
		})
	}
}
