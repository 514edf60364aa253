package dto

import (
	"time"

	"github.com/google/uuid"
)

type MatchResponse struct {
	Rank                 int       `json:"rank"`
	JobID                uuid.UUID `json:"job_id"`
	JobTitle             string    `json:"job_title"`
	SimilarityScore      float64   `json:"similarity_score"`
	SimilarityPercentage float64   `json:"similarity_percentage"`
}

type MatchListResponse struct {
	CatalogVersion string          `json:"catalog_version,omitempty"`
	RankedAt       *time.Time      `json:"ranked_at,omitempty"`
	Items          []MatchResponse `json:"items"`
}

type CatalogResponse struct {
	Version        string `json:"version"`
	EmbeddingSpace string `json:"embedding_space"`
	Size           int    `json:"size"`
	Dimension      int    `json:"dimension"`
}
