package analysis

import (
	"context"
	"fmt"

	"ai-presentation-coach-be/internal/model"
	"ai-presentation-coach-be/pkg/llm"
)

// LLMContentAnalyzer rates transcript quality through the configured chat
// backend using a fixed JSON response contract.
type LLMContentAnalyzer struct {
	provider llm.LLMProvider
}

var _ ContentAnalyzer = &LLMContentAnalyzer{}

func NewLLMContentAnalyzer(provider llm.LLMProvider) *LLMContentAnalyzer {
	return &LLMContentAnalyzer{provider: provider}
}

type contentResult struct {
	ClarityScore       float64  `json:"clarity_score"`
	FlowScore          float64  `json:"flow_score"`
	TechnicalAccuracy  float64  `json:"technical_accuracy"`
	ExplanationQuality float64  `json:"explanation_quality"`
	Suggestions        []string `json:"suggestions"`
}

func (a *LLMContentAnalyzer) Assess(ctx context.Context, transcript string, cfg model.SessionConfig) (model.ContentMetrics, error) {
	prompt := fmt.Sprintf(`Analyze this presentation transcript for clarity, flow, and explanation quality.

Topic: %s
Mode: %s
%s

Transcript: %s

Please provide:
1. Clarity score (0-1): How clear and understandable is the explanation?
2. Flow score (0-1): How well do the ideas flow together?
3. Technical accuracy (0-1): How accurate is the technical content?
4. Explanation quality (0-1): How well are complex concepts explained?
5. Specific suggestions for improvement

Format your response as JSON:
{
    "clarity_score": 0.8,
    "flow_score": 0.7,
    "technical_accuracy": 0.9,
    "explanation_quality": 0.6,
    "suggestions": [
        "Consider using more concrete examples",
        "The transition between topics could be smoother"
    ]
}`, cfg.Topic, cfg.Mode, ModeContext(cfg.Mode, cfg.CustomContext), transcript)

	reply, err := a.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return model.ContentMetrics{}, fmt.Errorf("content assessment call: %w", err)
	}

	var result contentResult
	if err := decodeModelJSON(reply, &result); err != nil {
		return model.ContentMetrics{}, fmt.Errorf("content assessment reply: %w", err)
	}

	return model.ContentMetrics{
		ClarityScore:          result.ClarityScore,
		FlowScore:             result.FlowScore,
		TechnicalAccuracy:     result.TechnicalAccuracy,
		ExplanationQuality:    result.ExplanationQuality,
		SuggestedImprovements: result.Suggestions,
	}, nil
}

// ModeContext is the fixed audience-context sentence injected into analysis
// prompts for each presentation mode.
func ModeContext(mode model.Mode, customContext string) string {
	switch mode {
	case model.ModeProfessional:
		return "This is a professional presentation. Focus on business communication standards."
	case model.ModeTechnical:
		return "This is a technical presentation. Focus on technical accuracy and depth."
	case model.ModeLayperson:
		return "This is for a general audience. Focus on accessibility and simplicity."
	case model.ModeCasual:
		return "This is a casual presentation. Focus on conversational flow and engagement."
	case model.ModeCustom:
		if customContext != "" {
			return "Custom context: " + customContext
		}
	}
	return "This is a general presentation. Focus on overall communication effectiveness."
}
