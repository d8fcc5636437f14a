package analysis

import (
	"context"
	"fmt"
	"strings"

	"ai-presentation-coach-be/internal/model"
	"ai-presentation-coach-be/pkg/llm"
)

// Only the first few expert documents ride along in the prompt to keep the
// payload bounded.
const maxExpertDocuments = 3

// LLMQuestionGenerator generates comprehension questions through the chat
// backend. Technical-mode sessions with reference documents get the expert
// prompt shape; everything else gets the standard one.
type LLMQuestionGenerator struct {
	provider llm.LLMProvider
}

var _ QuestionGenerator = &LLMQuestionGenerator{}

func NewLLMQuestionGenerator(provider llm.LLMProvider) *LLMQuestionGenerator {
	return &LLMQuestionGenerator{provider: provider}
}

type questionsResult struct {
	Questions []struct {
		Question   string `json:"question"`
		Category   string `json:"category"`
		Difficulty string `json:"difficulty"`
		Context    string `json:"context"`
	} `json:"questions"`
}

func (g *LLMQuestionGenerator) Generate(ctx context.Context, transcript string, cfg model.SessionConfig) ([]model.Question, error) {
	if cfg.Mode == model.ModeTechnical && len(cfg.ExpertDocuments) > 0 {
		return g.generateExpert(ctx, transcript, cfg)
	}
	return g.generateStandard(ctx, transcript, cfg)
}

func (g *LLMQuestionGenerator) generateStandard(ctx context.Context, transcript string, cfg model.SessionConfig) ([]model.Question, error) {
	prompt := fmt.Sprintf(`Generate 3-5 thoughtful questions about this presentation that would test the speaker's understanding.

Topic: %s
Context: %s
Transcript: %s

Create questions that:
1. Test understanding of key concepts
2. Explore implications or applications
3. Challenge assumptions or ask for clarification
4. Are appropriate for the %s mode

Format as JSON:
{
    "questions": [
        {
            "question": "What would happen if...",
            "category": "application",
            "difficulty": "medium",
            "context": "Testing practical understanding"
        }
    ]
}`, cfg.Topic, questionModeContext(cfg.Mode), transcript, cfg.Mode)

	reply, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.7))
	if err != nil {
		return nil, fmt.Errorf("question generation call: %w", err)
	}
	return parseQuestions(reply)
}

func (g *LLMQuestionGenerator) generateExpert(ctx context.Context, transcript string, cfg model.SessionConfig) ([]model.Question, error) {
	docs := cfg.ExpertDocuments
	if len(docs) > maxExpertDocuments {
		docs = docs[:maxExpertDocuments]
	}
	documentContext := strings.Join(docs, "\n")

	prompt := fmt.Sprintf(`As an expert in %s, generate challenging questions based on both the presentation and these expert documents.

Topic: %s
Presentation: %s
Expert Documents: %s

Create 5-7 expert-level questions that:
1. Test deep understanding of the field
2. Connect presentation content to broader knowledge
3. Challenge with advanced concepts
4. Reference specific details from the documents

Format as JSON:
{
    "questions": [
        {
            "question": "Based on the research in document X, how would you explain...",
            "category": "expert_analysis",
            "difficulty": "expert",
            "context": "Testing expert-level understanding"
        }
    ]
}`, cfg.Topic, cfg.Topic, transcript, documentContext)

	reply, err := g.provider.Generate(ctx, prompt, llm.WithTemperature(0.5))
	if err != nil {
		return nil, fmt.Errorf("expert question generation call: %w", err)
	}
	return parseQuestions(reply)
}

func parseQuestions(reply string) ([]model.Question, error) {
	var result questionsResult
	if err := decodeModelJSON(reply, &result); err != nil {
		return nil, fmt.Errorf("question generation reply: %w", err)
	}

	questions := make([]model.Question, 0, len(result.Questions))
	for _, q := range result.Questions {
		questions = append(questions, model.Question{
			Question:   q.Question,
			Category:   q.Category,
			Difficulty: q.Difficulty,
			Context:    q.Context,
		})
	}
	return questions, nil
}

func questionModeContext(mode model.Mode) string {
	switch mode {
	case model.ModeProfessional:
		return "professional business context"
	case model.ModeTechnical:
		return "technical expert context"
	case model.ModeLayperson:
		return "general audience context"
	case model.ModeCasual:
		return "casual conversation context"
	}
	return "general context"
}
