package dto

import (
	"time"

	"career-match/internal/domain/gap"

	"github.com/google/uuid"
)

type GapReportResponse struct {
	JobID       uuid.UUID  `json:"job_id"`
	JobTitle    string     `json:"job_title"`
	Attempt     int        `json:"attempt_number,omitempty"`
	GapAnalysis gap.Report `json:"gap_analysis"`
	ComputedAt  *time.Time `json:"computed_at,omitempty"`
}

type GapFailureResponse struct {
	JobID    uuid.UUID `json:"job_id"`
	JobTitle string    `json:"job_title"`
	Reason   string    `json:"reason"`
}

type GapComputeResponse struct {
	Attempt  int                  `json:"attempt_number"`
	Reports  []GapReportResponse  `json:"reports"`
	Failures []GapFailureResponse `json:"failures"`
}

type GapOverviewResponse struct {
	State   string              `json:"state"`
	Reports []GapReportResponse `json:"reports"`
}
