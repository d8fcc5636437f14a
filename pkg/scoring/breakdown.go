package scoring

import "ai-presentation-coach-be/internal/model"

// FactorBreakdown is the per-factor detail of one score, with a band-based
// feedback line per factor. Used for end-of-session summaries.
type FactorBreakdown struct {
	Score    float64 `json:"score"`
	Value    float64 `json:"value,omitempty"`
	Feedback string  `json:"feedback"`
}

type Breakdown struct {
	OverallScore  float64                    `json:"overall_score"`
	DeliveryScore float64                    `json:"audio_score"`
	ContentScore  float64                    `json:"content_score"`
	Factors       map[string]FactorBreakdown `json:"breakdown"`
}

// Explain produces the detailed breakdown for one recorded score.
func Explain(s model.Score) Breakdown {
	return Breakdown{
		OverallScore:  s.OverallScore,
		DeliveryScore: DeliveryScore(s.Delivery),
		ContentScore:  ContentScore(s.Content),
		Factors: map[string]FactorBreakdown{
			"pace": {
				Score:    paceScore(s.Delivery.Pace),
				Value:    s.Delivery.Pace,
				Feedback: paceFeedback(s.Delivery.Pace),
			},
			"filler_words": {
				Score:    fillerScore(s.Delivery.FillerCount),
				Value:    float64(s.Delivery.FillerCount),
				Feedback: fillerFeedback(s.Delivery.FillerCount),
			},
			"clarity": {
				Score:    s.Content.ClarityScore,
				Feedback: clarityFeedback(s.Content.ClarityScore),
			},
			"flow": {
				Score:    s.Content.FlowScore,
				Feedback: flowFeedback(s.Content.FlowScore),
			},
		},
	}
}

func paceFeedback(pace float64) string {
	switch {
	case pace < 100:
		return "Speaking too slowly. Try to increase your pace."
	case pace > 200:
		return "Speaking too quickly. Slow down for better comprehension."
	case pace >= 120 && pace <= 180:
		return "Excellent speaking pace!"
	default:
		return "Good pace, but could be slightly adjusted."
	}
}

func fillerFeedback(count int) string {
	switch {
	case count == 0:
		return "No filler words detected - excellent!"
	case count <= 3:
		return "Minimal filler words - good job!"
	case count <= 6:
		return "Some filler words detected. Practice pausing instead."
	default:
		return "Too many filler words. Focus on clear pauses."
	}
}

func clarityFeedback(score float64) string {
	switch {
	case score >= 0.8:
		return "Excellent clarity and explanation quality!"
	case score >= 0.6:
		return "Good clarity, but could be improved."
	default:
		return "Clarity needs improvement. Consider simplifying explanations."
	}
}

func flowFeedback(score float64) string {
	switch {
	case score >= 0.8:
		return "Excellent flow and organization!"
	case score >= 0.6:
		return "Good flow, but transitions could be smoother."
	default:
		return "Flow needs improvement. Work on better transitions between ideas."
	}
}
