package analysis

import (
	"context"
	"strings"

	"ai-presentation-coach-be/internal/model"
	"ai-presentation-coach-be/pkg/audio"
)

// LocalDeliveryAnalyzer computes delivery metrics straight from raw PCM with
// energy and pitch heuristics, no external service involved. When a
// transcript is available the pace estimate uses its word count; otherwise
// syllable bursts stand in for it.
type LocalDeliveryAnalyzer struct {
	sampleRate int
}

var _ DeliveryAnalyzer = &LocalDeliveryAnalyzer{}

func NewLocalDeliveryAnalyzer(sampleRate int) *LocalDeliveryAnalyzer {
	return &LocalDeliveryAnalyzer{sampleRate: sampleRate}
}

func (a *LocalDeliveryAnalyzer) Measure(_ context.Context, pcm []byte, transcript string) (model.DeliveryMetrics, error) {
	feats := audio.ExtractFeatures(pcm, a.sampleRate)
	if feats.DurationSeconds == 0 {
		return FallbackDeliveryMetrics(), nil
	}

	minutes := feats.DurationSeconds / 60.0

	var words float64
	if transcript != "" {
		words = float64(len(strings.Fields(transcript)))
	} else {
		// ~1.5 syllables per English word
		words = float64(feats.SyllableBursts) / 1.5
	}

	var pace float64
	if minutes > 0 {
		pace = words / minutes
	}

	return model.DeliveryMetrics{
		Transcription:      transcript,
		Pace:               pace,
		Tone:               feats.MeanPitch,
		FillerWords:        []string{}, // needs a forced-alignment backend; local variant reports none
		FillerCount:        0,
		IntonationVariance: feats.PitchVariance,
		ClarityScore:       clarityFromSNR(feats.SNR),
	}, nil
}

// clarityFromSNR maps the percentile spread between speech and noise energy
// onto a 0..1 clarity scalar. 40 dB of separation is treated as fully clear.
func clarityFromSNR(snrDB float64) float64 {
	c := snrDB / 40.0
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
