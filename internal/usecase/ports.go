package usecase

import (
	"context"
	"io"
	"time"

	"career-match/internal/domain/attempt"
	"career-match/internal/domain/gap"
	"career-match/internal/domain/report"
	"career-match/internal/domain/roadmap"
)

// Embedder turns text into a vector of one fixed embedding space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Space() string
}

type RoadmapGenerator interface {
	Generate(ctx context.Context, jobTitle string, gaps gap.Report) (roadmap.Roadmap, error)
}

type QuestionGenerator interface {
	Generate(ctx context.Context, profileText string, count int) ([]attempt.Question, error)
}

// Notifier pushes an event to connected clients. Delivery is best effort.
type Notifier interface {
	Notify(event string, payload any)
}

type ReportRenderer func(w io.Writer, data report.Data) error

type rankingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, any) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
