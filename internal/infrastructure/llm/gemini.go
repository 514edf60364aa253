package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-match/internal/config"
	"career-match/internal/domain/gap"
	"career-match/internal/domain/roadmap"
	"career-match/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultMaxRetries = 2

// textModel is a Gemini text model asked for JSON output.
type textModel struct {
	client     *genai.Client
	model      string
	maxRetries int
	log        *zap.Logger
}

func newTextModel(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (textModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return textModel{}, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return textModel{}, fmt.Errorf("create gemini client: %w", err)
	}
	return textModel{
		client:     client,
		model:      cfg.TextModel,
		maxRetries: defaultMaxRetries,
		log:        logger.OrNop(log),
	}, nil
}

// withRetries calls the model until parse accepts its output. Transport
// errors and unparsable output are both retried.
func (m textModel) withRetries(ctx context.Context, what, prompt string, parse func(string) error) error {
	var lastErr error
	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		text, err := m.generateContent(ctx, prompt)
		if err == nil {
			err = parse(text)
			if err == nil {
				return nil
			}
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.log.Warn(what+" generation failed", zap.Int("attempt", attempt), zap.Error(err))
	}
	return fmt.Errorf("%s generation failed after %d attempts: %w", what, m.maxRetries, lastErr)
}

func (m textModel) generateContent(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0.2)
	cfg := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	var builder strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate == nil || candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part == nil {
					continue
				}
				if text := strings.TrimSpace(part.Text); text != "" {
					builder.WriteString(text)
				}
			}
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

// RoadmapGenerator asks a Gemini text model for a learning roadmap covering
// the gaps of one job report.
type RoadmapGenerator struct {
	textModel
}

func NewRoadmapGenerator(ctx context.Context, cfg config.GeminiConfig, log *zap.Logger) (*RoadmapGenerator, error) {
	m, err := newTextModel(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &RoadmapGenerator{textModel: m}, nil
}

// Generate retries on transport errors and on output that does not parse.
func (g *RoadmapGenerator) Generate(ctx context.Context, jobTitle string, gaps gap.Report) (roadmap.Roadmap, error) {
	var out roadmap.Roadmap
	err := g.withRetries(ctx, "roadmap", roadmap.Prompt(jobTitle, gaps), func(text string) error {
		r, err := roadmap.Parse(text)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		g.log.Warn("roadmap unavailable", zap.String("job_title", jobTitle), zap.Error(err))
		return roadmap.Roadmap{}, err
	}
	return out, nil
}
