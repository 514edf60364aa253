package llm

import (
	"context"

	"career-match/internal/config"
	"career-match/internal/domain/attempt"

	"go.uber.org/zap"
)

// QuestionGenerator asks a Gemini text model for a multiple choice set
// probing what a profile text claims.
type QuestionGenerator struct {
	textModel
}

func NewQuestionGenerator(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (*QuestionGenerator, error) {
	m, err := newTextModel(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &QuestionGenerator{textModel: m}, nil
}

// Generate returns at most count questions. Identity fields are left for
// the caller to fill.
func (g *QuestionGenerator) Generate(ctx context.Context, profileText string, count int) ([]attempt.Question, error) {
	if count <= 0 {
		count = attempt.DefaultQuestionCount
	}
	var out []attempt.Question
	err := g.withRetries(ctx, "question", attempt.QuestionPrompt(profileText, count), func(text string) error {
		qs, err := attempt.ParseQuestions(text)
		if err != nil {
			return err
		}
		out = qs
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) > count {
		out = out[:count]
	}
	return out, nil
}
