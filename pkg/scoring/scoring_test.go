package scoring

import (
	"math"
	"testing"

	"ai-presentation-coach-be/internal/model"
)

func perfectDelivery() model.DeliveryMetrics {
	return model.DeliveryMetrics{
		Pace:               150,
		Tone:               200,
		FillerCount:        0,
		IntonationVariance: 1.0,
		ClarityScore:       1.0,
	}
}

func perfectContent() model.ContentMetrics {
	return model.ContentMetrics{
		ClarityScore:       1.0,
		FlowScore:          1.0,
		TechnicalAccuracy:  1.0,
		ExplanationQuality: 1.0,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculatePerfectInputs(t *testing.T) {
	score := Calculate(perfectDelivery(), perfectContent(), model.ModeProfessional, "topic")
	if !almostEqual(score.OverallScore, 1.0) {
		t.Errorf("OverallScore = %v, want 1.0", score.OverallScore)
	}
}

func TestCalculateModeAdjustments(t *testing.T) {
	tests := []struct {
		mode model.Mode
		want float64
	}{
		{model.ModeProfessional, 1.0},
		{model.ModeTechnical, 0.95},
		{model.ModeLayperson, 1.05},
		{model.ModeCasual, 0.9},
		{model.ModeCustom, 1.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			score := Calculate(perfectDelivery(), perfectContent(), tt.mode, "t")
			if !almostEqual(score.OverallScore, tt.want) {
				t.Errorf("OverallScore = %v, want %v", score.OverallScore, tt.want)
			}
		})
	}
}

func TestCalculateIsPure(t *testing.T) {
	d := model.DeliveryMetrics{Pace: 95, Tone: 350, FillerCount: 4, IntonationVariance: 2.5, ClarityScore: 0.6}
	c := model.ContentMetrics{ClarityScore: 0.7, FlowScore: 0.5, TechnicalAccuracy: 0.9, ExplanationQuality: 0.4}

	a := Calculate(d, c, model.ModeTechnical, "t")
	b := Calculate(d, c, model.ModeTechnical, "t")
	if !almostEqual(a.OverallScore, b.OverallScore) {
		t.Errorf("identical inputs produced %v and %v", a.OverallScore, b.OverallScore)
	}
}

func TestPaceBands(t *testing.T) {
	tests := []struct {
		pace float64
		want float64
	}{
		{150, 1.0},
		{120, 1.0},
		{180, 1.0},
		{110, 0.7},
		{100, 0.7},
		{190, 0.7},
		{200, 0.7},
		{99, 0.4},
		{201, 0.4},
		{0, 0.4},
	}
	for _, tt := range tests {
		if got := paceScore(tt.pace); got != tt.want {
			t.Errorf("paceScore(%v) = %v, want %v", tt.pace, got, tt.want)
		}
	}
}

func TestVarianceBands(t *testing.T) {
	tests := []struct {
		variance float64
		want     float64
	}{
		{1.0, 1.0},
		{0.5, 1.0},
		{2.0, 1.0},
		{0.3, 0.7},
		{2.5, 0.7},
		{3.0, 0.7},
		{0.1, 0.4},
		{3.1, 0.4},
	}
	for _, tt := range tests {
		if got := varianceScore(tt.variance); got != tt.want {
			t.Errorf("varianceScore(%v) = %v, want %v", tt.variance, got, tt.want)
		}
	}
}

func TestToneBands(t *testing.T) {
	tests := []struct {
		tone float64
		want float64
	}{
		{200, 1.0},
		{100, 1.0},
		{300, 1.0},
		{90, 0.7},
		{350, 0.7},
		{400, 0.7},
		{79, 0.4},
		{401, 0.4},
	}
	for _, tt := range tests {
		if got := toneScore(tt.tone); got != tt.want {
			t.Errorf("toneScore(%v) = %v, want %v", tt.tone, got, tt.want)
		}
	}
}

func TestFillerScoreFloorsAtZero(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 1.0},
		{3, 0.7},
		{10, 0.0},
		{25, 0.0},
	}
	for _, tt := range tests {
		if got := fillerScore(tt.count); !almostEqual(got, tt.want) {
			t.Errorf("fillerScore(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestExplainFactors(t *testing.T) {
	score := Calculate(perfectDelivery(), perfectContent(), model.ModeProfessional, "t")
	b := Explain(score)

	if !almostEqual(b.OverallScore, score.OverallScore) {
		t.Errorf("OverallScore = %v, want %v", b.OverallScore, score.OverallScore)
	}
	for _, factor := range []string{"pace", "filler_words", "clarity", "flow"} {
		f, ok := b.Factors[factor]
		if !ok {
			t.Fatalf("missing factor %q", factor)
		}
		if f.Feedback == "" {
			t.Errorf("factor %q has empty feedback", factor)
		}
	}
	if b.Factors["pace"].Feedback != "Excellent speaking pace!" {
		t.Errorf("pace feedback = %q", b.Factors["pace"].Feedback)
	}
	if b.Factors["filler_words"].Feedback != "No filler words detected - excellent!" {
		t.Errorf("filler feedback = %q", b.Factors["filler_words"].Feedback)
	}
}
