package usecase

import (
	"context"

	"career-match/internal/domain/roadmap"
	"career-match/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoadmapUsecase interface {
	Generate(ctx context.Context, userID, jobID uuid.UUID) (roadmap.Roadmap, error)
}

type Roadmap struct {
	gaps      GapAnalysisUsecase
	generator RoadmapGenerator
	log       *zap.Logger
}

func NewRoadmapUsecase(gaps GapAnalysisUsecase, generator RoadmapGenerator, log *zap.Logger) *Roadmap {
	return &Roadmap{gaps: gaps, generator: generator, log: logger.OrNop(log)}
}

// Generate builds a learning roadmap from the gap entries of one job. A job
// without gaps yields an empty roadmap without calling the generator.
func (u *Roadmap) Generate(ctx context.Context, userID, jobID uuid.UUID) (roadmap.Roadmap, error) {
	input, err := u.gaps.RoadmapInput(ctx, userID, jobID)
	if err != nil {
		return roadmap.Roadmap{}, err
	}
	if input.Report.IsEmpty() {
		return roadmap.Roadmap{Topics: map[string]string{}, SubTopics: map[string][]string{}}, nil
	}
	if u.generator == nil {
		return roadmap.Roadmap{}, ErrRoadmapUnavailable
	}

	r, err := u.generator.Generate(ctx, input.Title, input.Report)
	if err != nil {
		u.log.Error("roadmap generation failed",
			zap.String("user_id", userID.String()),
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
		return roadmap.Roadmap{}, ErrRoadmapUnavailable
	}
	return r, nil
}
