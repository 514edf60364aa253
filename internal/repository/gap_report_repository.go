package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"career-match/internal/database"
	"career-match/internal/domain/gap"

	"github.com/google/uuid"
)

var ErrGapReportNotFound = errors.New("gap report not found")

// StoredGapReport keeps the similarity percentage the report was computed
// with, so it stays readable after the job leaves the ranking.
type StoredGapReport struct {
	UserID     uuid.UUID
	Attempt    int
	Similarity float64
	Job        gap.JobReport
	ComputedAt time.Time
}

type GapReportRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, attemptNo int, similarity float64, rep gap.JobReport) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]StoredGapReport, error)
	FindByUserJob(ctx context.Context, userID, jobID uuid.UUID) (StoredGapReport, error)
}

type PostgresGapReportRepository struct {
	db database.DB
}

func NewPostgresGapReportRepository(db database.DB) *PostgresGapReportRepository {
	return &PostgresGapReportRepository{db: db}
}

// Upsert overwrites any previous report for the same (user, job) pair.
func (r *PostgresGapReportRepository) Upsert(ctx context.Context, userID uuid.UUID, attemptNo int, similarity float64, rep gap.JobReport) error {
	skills, err := json.Marshal(nonNilEntries(rep.Report.Skills))
	if err != nil {
		return err
	}
	knowledge, err := json.Marshal(nonNilEntries(rep.Report.Knowledge))
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO job_gap_reports (user_id, job_id, job_title, attempt, similarity_percentage, skill_status, knowledge_status, computed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (user_id, job_id) DO UPDATE SET
			job_title = EXCLUDED.job_title,
			attempt = EXCLUDED.attempt,
			similarity_percentage = EXCLUDED.similarity_percentage,
			skill_status = EXCLUDED.skill_status,
			knowledge_status = EXCLUDED.knowledge_status,
			computed_at = EXCLUDED.computed_at`,
		userID, rep.JobID, rep.Title, attemptNo, similarity, skills, knowledge, time.Now().UTC(),
	)
	return err
}

const gapReportColumns = `user_id, job_id, job_title, attempt, similarity_percentage, skill_status, knowledge_status, computed_at`

func (r *PostgresGapReportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]StoredGapReport, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+gapReportColumns+` FROM job_gap_reports WHERE user_id = $1 ORDER BY computed_at ASC, job_id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredGapReport, 0)
	for rows.Next() {
		rep, err := scanGapReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresGapReportRepository) FindByUserJob(ctx context.Context, userID, jobID uuid.UUID) (StoredGapReport, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+gapReportColumns+` FROM job_gap_reports WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	rep, err := scanGapReport(row)
	if err != nil {
		if isNoRows(err) {
			return StoredGapReport{}, ErrGapReportNotFound
		}
		return StoredGapReport{}, err
	}
	return rep, nil
}

func scanGapReport(row database.Row) (StoredGapReport, error) {
	var (
		rep       StoredGapReport
		skills    []byte
		knowledge []byte
	)
	if err := row.Scan(&rep.UserID, &rep.Job.JobID, &rep.Job.Title, &rep.Attempt, &rep.Similarity, &skills, &knowledge, &rep.ComputedAt); err != nil {
		return StoredGapReport{}, err
	}
	if err := json.Unmarshal(skills, &rep.Job.Report.Skills); err != nil {
		return StoredGapReport{}, err
	}
	if err := json.Unmarshal(knowledge, &rep.Job.Report.Knowledge); err != nil {
		return StoredGapReport{}, err
	}
	return rep, nil
}

func nonNilEntries(e []gap.Entry) []gap.Entry {
	if e == nil {
		return []gap.Entry{}
	}
	return e
}
