package report

import (
	"time"

	"career-match/internal/domain/attempt"
	"career-match/internal/domain/gap"
	"career-match/internal/domain/level"

	"github.com/google/uuid"
)

// Data is everything a rendered report for one (user, job) pair shows.
type Data struct {
	UserID       uuid.UUID      `json:"user_id"`
	ProfileText  string         `json:"profile_text"`
	JobID        uuid.UUID      `json:"job_id"`
	JobTitle     string         `json:"job_title"`
	Company      string         `json:"company"`
	Similarity   float64        `json:"similarity_percentage"`
	Attempt      int            `json:"attempt_number"`
	Gap          gap.Report     `json:"gap_analysis"`
	Performance  attempt.Result `json:"performance"`
	GeneratedAt  time.Time      `json:"generated_at"`
	StatusCounts StatusCounts   `json:"status_counts"`
}

// StatusCounts feeds the status distribution chart.
type StatusCounts struct {
	Achieved int `json:"achieved"`
	Weak     int `json:"weak"`
	Missing  int `json:"missing"`
}

func CountStatuses(r gap.Report) StatusCounts {
	c := r.Counts()
	return StatusCounts{
		Achieved: c[level.StatusAchieved],
		Weak:     c[level.StatusWeak],
		Missing:  c[level.StatusMissing],
	}
}
