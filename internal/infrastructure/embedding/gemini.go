package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-match/internal/config"
	"career-match/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// maxInputRunes keeps requests under the embedding model's token limit.
const maxInputRunes = 10000

var ErrEmptyInput = errors.New("embedding input must not be empty")

// Gemini turns profile and posting text into vectors. All vectors it returns
// belong to the same embedding space, identified by Space.
type Gemini struct {
	client *genai.Client
	model  string
	space  string
	log    *zap.Logger
}

func NewGemini(ctx context.Context, cfg config.GeminiConfig, space string, log *zap.Logger) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if space == "" {
		space = "gemini/" + cfg.EmbeddingModel
	}
	return &Gemini{client: client, model: cfg.EmbeddingModel, space: space, log: logger.OrNop(log)}, nil
}

func (g *Gemini) Space() string {
	return g.space
}

func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if r := []rune(text); len(r) > maxInputRunes {
		text = string(r[:maxInputRunes])
	}

	res, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		g.log.Warn("embedding request failed", zap.String("model", g.model), zap.Error(err))
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if res == nil || len(res.Embeddings) == 0 || res.Embeddings[0] == nil || len(res.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini returned an empty embedding")
	}

	g.log.Debug("embedding generated",
		zap.String("model", g.model),
		zap.Int("dimension", len(res.Embeddings[0].Values)),
		zap.String("input", logger.Truncate(text, 60)),
	)
	return res.Embeddings[0].Values, nil
}
