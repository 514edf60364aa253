package importer

import (
	"context"
	"fmt"
	"strings"

	"career-match/internal/domain/job"
	"career-match/internal/logger"

	"go.uber.org/zap"
)

type embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Space() string
}

type postingStore interface {
	Upsert(ctx context.Context, p job.Posting, space string) error
}

type Summary struct {
	Imported int
	Failed   int
}

// Options bound the load put on the embedding provider.
type Options struct {
	Workers int
	// RPS caps embedding calls per second; zero means unlimited.
	RPS int
}

// Importer embeds postings and stores them in the embedder's space. A
// posting that fails is logged and skipped.
type Importer struct {
	jobs     postingStore
	embedder embedder
	opts     Options
	log      *zap.Logger
}

func New(jobs postingStore, emb embedder, opts Options, log *zap.Logger) *Importer {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Importer{jobs: jobs, embedder: emb, opts: opts, log: logger.OrNop(log)}
}

func (im *Importer) Run(ctx context.Context, postings []job.Posting) (Summary, error) {
	space := im.embedder.Space()

	errs := runPool(ctx, im.opts.Workers, im.opts.RPS, len(postings), func(ctx context.Context, i int) error {
		p := postings[i]
		vec, err := im.embedder.Embed(ctx, EmbeddingText(p))
		if err != nil {
			im.log.Warn("embed posting failed", zap.String("title", p.Title), zap.Error(err))
			return err
		}
		p.Embedding = vec
		if err := im.jobs.Upsert(ctx, p, space); err != nil {
			im.log.Warn("store posting failed", zap.String("title", p.Title), zap.Error(err))
			return err
		}
		return nil
	})

	var sum Summary
	for _, err := range errs {
		if err != nil {
			sum.Failed++
			continue
		}
		sum.Imported++
	}

	im.log.Info("catalog import finished",
		zap.Int("imported", sum.Imported),
		zap.Int("failed", sum.Failed),
		zap.String("embedding_space", space),
	)
	if err := ctx.Err(); err != nil {
		return sum, err
	}
	if sum.Imported == 0 && sum.Failed > 0 {
		return sum, fmt.Errorf("no postings imported, %d failed", sum.Failed)
	}
	return sum, nil
}

// EmbeddingText is the text a posting is embedded from: its description, or
// the title when the description is empty.
func EmbeddingText(p job.Posting) string {
	if d := strings.TrimSpace(p.Description); d != "" {
		return d
	}
	return strings.TrimSpace(p.Title)
}
