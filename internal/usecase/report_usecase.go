package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"career-match/internal/domain/attempt"
	"career-match/internal/domain/report"
	"career-match/internal/domain/user"
	"career-match/internal/logger"
	"career-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportUsecase interface {
	Get(ctx context.Context, userID, jobID uuid.UUID) (report.Data, error)
	Export(ctx context.Context, userID, jobID uuid.UUID, w io.Writer) error
}

type Report struct {
	users       user.Repository
	jobs        repository.JobPostingRepository
	gaps        repository.GapReportRepository
	assessments repository.AssessmentRepository
	render      ReportRenderer
	log         *zap.Logger
	now         func() time.Time
}

func NewReportUsecase(
	users user.Repository,
	jobs repository.JobPostingRepository,
	gaps repository.GapReportRepository,
	assessments repository.AssessmentRepository,
	render ReportRenderer,
	log *zap.Logger,
) *Report {
	return &Report{
		users:       users,
		jobs:        jobs,
		gaps:        gaps,
		assessments: assessments,
		render:      render,
		log:         logger.OrNop(log),
		now:         time.Now,
	}
}

// Get assembles the report of one job from the stored gap report. The
// similarity and quiz performance shown are the ones the gap report was
// computed with, even when the job has since left the ranking.
func (u *Report) Get(ctx context.Context, userID, jobID uuid.UUID) (report.Data, error) {
	if userID == uuid.Nil {
		return report.Data{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return report.Data{}, ErrInvalidInput
	}

	profile, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return report.Data{}, ErrUserNotFound
		}
		return report.Data{}, ErrInternal
	}
	posting, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobPostingNotFound) {
			return report.Data{}, ErrJobNotFound
		}
		return report.Data{}, ErrInternal
	}
	stored, err := u.gaps.FindByUserJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrGapReportNotFound) {
			return report.Data{}, ErrGapReportNotFound
		}
		return report.Data{}, ErrInternal
	}

	questions, err := u.assessments.QuestionsByAttempt(ctx, userID, stored.Attempt)
	if err != nil {
		return report.Data{}, ErrInternal
	}
	answers, err := u.assessments.AnswersByAttempt(ctx, userID, stored.Attempt)
	if err != nil {
		return report.Data{}, ErrInternal
	}

	return report.Data{
		UserID:       userID,
		ProfileText:  profile.ProfileText,
		JobID:        jobID,
		JobTitle:     posting.Title,
		Company:      posting.Company,
		Similarity:   stored.Similarity,
		Attempt:      stored.Attempt,
		Gap:          stored.Job.Report,
		Performance:  attempt.Score(questions, answers),
		GeneratedAt:  u.now().UTC(),
		StatusCounts: report.CountStatuses(stored.Job.Report),
	}, nil
}

func (u *Report) Export(ctx context.Context, userID, jobID uuid.UUID, w io.Writer) error {
	data, err := u.Get(ctx, userID, jobID)
	if err != nil {
		return err
	}
	if u.render == nil {
		return ErrInternal
	}
	if err := u.render(w, data); err != nil {
		u.log.Error("report render failed", zap.String("job_id", jobID.String()), zap.Error(err))
		return ErrInternal
	}
	return nil
}
