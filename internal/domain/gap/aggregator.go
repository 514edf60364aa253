package gap

import (
	"context"

	"career-match/internal/domain/matching"

	"github.com/google/uuid"
)

// SessionState tracks how far a user's assessment has progressed.
type SessionState string

const (
	StateNoMatches    SessionState = "no_matches"
	StateRanked       SessionState = "ranked"
	StateGapsComputed SessionState = "gaps_computed"
)

// DeriveState computes the state from what has been persisted for a user.
// Gaps count as computed only when every ranked job has a report.
func DeriveState(ranked []uuid.UUID, reported []uuid.UUID) SessionState {
	if len(ranked) == 0 {
		return StateNoMatches
	}
	have := make(map[uuid.UUID]struct{}, len(reported))
	for _, id := range reported {
		have[id] = struct{}{}
	}
	for _, id := range ranked {
		if _, ok := have[id]; !ok {
			return StateRanked
		}
	}
	return StateGapsComputed
}

// RequirementSource resolves the requirement maps of a ranked job.
type RequirementSource interface {
	Requirements(ctx context.Context, jobID uuid.UUID) (Requirements, error)
}

type JobReport struct {
	JobID  uuid.UUID `json:"job_id"`
	Title  string    `json:"job_title"`
	Report Report    `json:"gap_analysis"`
}

type JobFailure struct {
	JobID uuid.UUID `json:"job_id"`
	Title string    `json:"job_title"`
	Err   error     `json:"-"`
}

type AggregateResult struct {
	Attempt  int
	Reports  []JobReport
	Failures []JobFailure
}

// Err returns a PartialAggregationError when at least one job failed.
func (r AggregateResult) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	e := &PartialAggregationError{
		Succeeded: make([]uuid.UUID, 0, len(r.Reports)),
		Failed:    make([]uuid.UUID, 0, len(r.Failures)),
	}
	for _, rep := range r.Reports {
		e.Succeeded = append(e.Succeeded, rep.JobID)
	}
	for _, f := range r.Failures {
		e.Failed = append(e.Failed, f.JobID)
	}
	return e
}

// Aggregate runs Compare once for every match. A job whose requirements
// cannot be resolved is recorded as a failure and the batch continues.
func Aggregate(ctx context.Context, attempt int, user Holdings, matches []matching.MatchResult, src RequirementSource) AggregateResult {
	res := AggregateResult{
		Attempt:  attempt,
		Reports:  make([]JobReport, 0, len(matches)),
		Failures: make([]JobFailure, 0),
	}

	for _, m := range matches {
		req, err := src.Requirements(ctx, m.JobID)
		if err == nil && (req.Skills == nil || req.Knowledge == nil) {
			err = NewMissingEntityError(EntityRequirements, m.JobID)
		}
		if err != nil {
			res.Failures = append(res.Failures, JobFailure{JobID: m.JobID, Title: m.Title, Err: err})
			continue
		}

		res.Reports = append(res.Reports, JobReport{
			JobID:  m.JobID,
			Title:  m.Title,
			Report: Compare(user, req),
		})
	}
	return res
}
