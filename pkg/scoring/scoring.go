package scoring

import (
	"time"

	"ai-presentation-coach-be/internal/model"
)

// Fixed component weights. Content quality deliberately dominates the overall
// score; delivery mechanics are secondary.
const (
	weightDelivery = 0.3
	weightContent  = 0.7
)

var deliveryWeights = struct {
	pace, tone, filler, variance, clarity float64
}{
	pace:     0.2,
	tone:     0.1,
	filler:   0.3,
	variance: 0.2,
	clarity:  0.2,
}

var contentWeights = struct {
	clarity, flow, accuracy, explanation float64
}{
	clarity:     0.3,
	flow:        0.25,
	accuracy:    0.25,
	explanation: 0.2,
}

// Per-mode adjustment factors encode stricter or looser audience expectations.
var modeAdjustments = map[model.Mode]float64{
	model.ModeProfessional: 1.0,
	model.ModeTechnical:    0.95,
	model.ModeLayperson:    1.05,
	model.ModeCasual:       0.9,
	model.ModeCustom:       1.0,
}

// Calculate combines one chunk's delivery and content metrics into a Score.
// Pure: identical inputs always yield identical sub-scores and overall value
// (the timestamp aside).
func Calculate(delivery model.DeliveryMetrics, content model.ContentMetrics, mode model.Mode, topic string) model.Score {
	overall := weightDelivery*DeliveryScore(delivery) + weightContent*ContentScore(content)

	if adj, ok := modeAdjustments[mode]; ok {
		overall *= adj
	}

	return model.Score{
		OverallScore: overall,
		Delivery:     delivery,
		Content:      content,
		Mode:         mode,
		Topic:        topic,
		CreatedAt:    time.Now(),
	}
}

// DeliveryScore is the weighted delivery sub-score in 0..1.
func DeliveryScore(m model.DeliveryMetrics) float64 {
	return paceScore(m.Pace)*deliveryWeights.pace +
		toneScore(m.Tone)*deliveryWeights.tone +
		fillerScore(m.FillerCount)*deliveryWeights.filler +
		varianceScore(m.IntonationVariance)*deliveryWeights.variance +
		m.ClarityScore*deliveryWeights.clarity
}

// ContentScore is the weighted content sub-score in 0..1.
func ContentScore(m model.ContentMetrics) float64 {
	return m.ClarityScore*contentWeights.clarity +
		m.FlowScore*contentWeights.flow +
		m.TechnicalAccuracy*contentWeights.accuracy +
		m.ExplanationQuality*contentWeights.explanation
}

// paceScore gives full credit in the 120-180 wpm band, partial credit just
// outside it, low credit elsewhere.
func paceScore(pace float64) float64 {
	switch {
	case pace >= 120 && pace <= 180:
		return 1.0
	case (pace >= 100 && pace < 120) || (pace > 180 && pace <= 200):
		return 0.7
	default:
		return 0.4
	}
}

func fillerScore(count int) float64 {
	s := 1.0 - float64(count)*0.1
	if s < 0 {
		return 0
	}
	return s
}

func varianceScore(variance float64) float64 {
	switch {
	case variance >= 0.5 && variance <= 2.0:
		return 1.0
	case (variance >= 0.2 && variance < 0.5) || (variance > 2.0 && variance <= 3.0):
		return 0.7
	default:
		return 0.4
	}
}

func toneScore(tone float64) float64 {
	switch {
	case tone >= 100 && tone <= 300:
		return 1.0
	case (tone >= 80 && tone < 100) || (tone > 300 && tone <= 400):
		return 0.7
	default:
		return 0.4
	}
}
