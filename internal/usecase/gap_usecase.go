package usecase

import (
	"context"
	"errors"

	"career-match/internal/domain/attempt"
	"career-match/internal/domain/gap"
	"career-match/internal/domain/matching"
	"career-match/internal/domain/user"
	"career-match/internal/logger"
	"career-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventGapsComputed = "gaps_computed"

// GapsComputed is only delivered to the user it belongs to.
type GapsComputed struct {
	UserID   uuid.UUID `json:"user_id"`
	Attempt  int       `json:"attempt_number"`
	Reports  int       `json:"reports"`
	Failures int       `json:"failures"`
}

func (e GapsComputed) Recipient() uuid.UUID { return e.UserID }

type GapOverview struct {
	State   gap.SessionState
	Reports []repository.StoredGapReport
}

type GapAnalysisUsecase interface {
	Compute(ctx context.Context, userID uuid.UUID) (gap.AggregateResult, error)
	Overview(ctx context.Context, userID uuid.UUID) (GapOverview, error)
	RoadmapInput(ctx context.Context, userID, jobID uuid.UUID) (gap.JobReport, error)
}

type GapAnalysis struct {
	users       user.Repository
	recs        repository.RecommendationRepository
	jobs        gap.RequirementSource
	gaps        repository.GapReportRepository
	assessments repository.AssessmentRepository
	notify      Notifier
	log         *zap.Logger
}

func NewGapAnalysisUsecase(
	users user.Repository,
	recs repository.RecommendationRepository,
	jobs gap.RequirementSource,
	gaps repository.GapReportRepository,
	assessments repository.AssessmentRepository,
	notify Notifier,
	log *zap.Logger,
) *GapAnalysis {
	return &GapAnalysis{
		users:       users,
		recs:        recs,
		jobs:        jobs,
		gaps:        gaps,
		assessments: assessments,
		notify:      notifierOrNop(notify),
		log:         logger.OrNop(log),
	}
}

// Compute classifies the user's holdings against every job of their stored
// ranking. The latest attempt number is resolved once and used for the whole
// run. Each successful report replaces the previous one for the same job.
// When some jobs fail the result is still returned together with a
// *gap.PartialAggregationError.
func (u *GapAnalysis) Compute(ctx context.Context, userID uuid.UUID) (gap.AggregateResult, error) {
	if userID == uuid.Nil {
		return gap.AggregateResult{}, ErrUnauthorized
	}

	ranking, err := u.recs.LatestRanking(ctx, userID)
	if err != nil {
		u.log.Error("load ranking failed", zap.String("user_id", userID.String()), zap.Error(err))
		return gap.AggregateResult{}, ErrInternal
	}
	if len(ranking) == 0 {
		return gap.AggregateResult{}, ErrNoMatches
	}

	profile, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return gap.AggregateResult{}, gap.NewMissingEntityError(gap.EntityUser, userID)
		}
		u.log.Error("load profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return gap.AggregateResult{}, ErrInternal
	}

	answers, err := u.assessments.AnswersByUser(ctx, userID)
	if err != nil {
		u.log.Error("load answers failed", zap.String("user_id", userID.String()), zap.Error(err))
		return gap.AggregateResult{}, ErrInternal
	}
	attemptNo := attempt.LatestAttempt(answers)

	matches := make([]matching.MatchResult, 0, len(ranking))
	percentages := make(map[uuid.UUID]float64, len(ranking))
	for _, m := range ranking {
		percentages[m.JobID] = m.Percentage
		matches = append(matches, matching.MatchResult{
			JobID:      m.JobID,
			Title:      m.Title,
			Score:      m.Score,
			Percentage: m.Percentage,
		})
	}

	holdings := gap.Holdings{Skills: profile.Skills, Knowledge: profile.Knowledge}
	res := gap.Aggregate(ctx, attemptNo, holdings, matches, u.jobs)

	stored := make([]gap.JobReport, 0, len(res.Reports))
	for _, rep := range res.Reports {
		if err := u.gaps.Upsert(ctx, userID, attemptNo, percentages[rep.JobID], rep); err != nil {
			u.log.Error("store gap report failed",
				zap.String("user_id", userID.String()),
				zap.String("job_id", rep.JobID.String()),
				zap.Error(err),
			)
			res.Failures = append(res.Failures, gap.JobFailure{JobID: rep.JobID, Title: rep.Title, Err: err})
			continue
		}
		stored = append(stored, rep)
	}
	res.Reports = stored

	for _, f := range res.Failures {
		u.log.Warn("gap analysis skipped job",
			zap.String("user_id", userID.String()),
			zap.String("job_id", f.JobID.String()),
			zap.Error(f.Err),
		)
	}

	u.log.Info("gap analysis computed",
		zap.String("user_id", userID.String()),
		zap.Int("attempt", attemptNo),
		zap.Int("reports", len(res.Reports)),
		zap.Int("failures", len(res.Failures)),
	)
	u.notify.Notify(EventGapsComputed, GapsComputed{
		UserID:   userID,
		Attempt:  attemptNo,
		Reports:  len(res.Reports),
		Failures: len(res.Failures),
	})

	return res, res.Err()
}

func (u *GapAnalysis) Overview(ctx context.Context, userID uuid.UUID) (GapOverview, error) {
	if userID == uuid.Nil {
		return GapOverview{}, ErrUnauthorized
	}
	ranking, err := u.recs.LatestRanking(ctx, userID)
	if err != nil {
		return GapOverview{}, ErrInternal
	}
	reports, err := u.gaps.ListByUser(ctx, userID)
	if err != nil {
		return GapOverview{}, ErrInternal
	}

	ranked := make([]uuid.UUID, 0, len(ranking))
	for _, m := range ranking {
		ranked = append(ranked, m.JobID)
	}
	reported := make([]uuid.UUID, 0, len(reports))
	for _, r := range reports {
		reported = append(reported, r.Job.JobID)
	}

	return GapOverview{State: gap.DeriveState(ranked, reported), Reports: reports}, nil
}

// RoadmapInput returns the stored report of one job reduced to its Missing
// and Weak entries.
func (u *GapAnalysis) RoadmapInput(ctx context.Context, userID, jobID uuid.UUID) (gap.JobReport, error) {
	if userID == uuid.Nil {
		return gap.JobReport{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return gap.JobReport{}, ErrInvalidInput
	}
	rep, err := u.gaps.FindByUserJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrGapReportNotFound) {
			return gap.JobReport{}, ErrGapReportNotFound
		}
		return gap.JobReport{}, ErrInternal
	}
	out := rep.Job
	out.Report = out.Report.Gaps()
	return out, nil
}
