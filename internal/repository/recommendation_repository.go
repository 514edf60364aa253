package repository

import (
	"context"
	"time"

	"career-match/internal/database"
	"career-match/internal/domain/matching"

	"github.com/google/uuid"
)

// StoredMatch is a persisted ranking entry.
type StoredMatch struct {
	JobID          uuid.UUID
	Title          string
	Rank           int
	Score          float64
	Percentage     float64
	CatalogVersion string
	RankedAt       time.Time
}

type RecommendationRepository interface {
	ReplaceRanking(ctx context.Context, userID uuid.UUID, catalogVersion string, results []matching.MatchResult) error
	LatestRanking(ctx context.Context, userID uuid.UUID) ([]StoredMatch, error)
}

type PostgresRecommendationRepository struct {
	db database.DB
}

func NewPostgresRecommendationRepository(db database.DB) *PostgresRecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

// ReplaceRanking drops the user's previous ranking and stores the new one.
func (r *PostgresRecommendationRepository) ReplaceRanking(ctx context.Context, userID uuid.UUID, catalogVersion string, results []matching.MatchResult) error {
	now := time.Now().UTC()
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM job_recommendations WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for i, m := range results {
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_recommendations (user_id, job_id, rank, catalog_version, similarity_score, similarity_percentage, ranked_at)
				 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				userID, m.JobID, i+1, catalogVersion, m.Score, m.Percentage, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresRecommendationRepository) LatestRanking(ctx context.Context, userID uuid.UUID) ([]StoredMatch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT jr.job_id, jp.title, jr.rank, jr.similarity_score, jr.similarity_percentage, jr.catalog_version, jr.ranked_at
		 FROM job_recommendations jr
		 JOIN job_postings jp ON jp.id = jr.job_id
		 WHERE jr.user_id = $1
		 ORDER BY jr.rank ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredMatch, 0)
	for rows.Next() {
		var m StoredMatch
		if err := rows.Scan(&m.JobID, &m.Title, &m.Rank, &m.Score, &m.Percentage, &m.CatalogVersion, &m.RankedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
