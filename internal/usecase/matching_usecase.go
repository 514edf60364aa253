package usecase

import (
	"context"
	"errors"
	"fmt"

	"career-match/internal/domain/matching"
	"career-match/internal/domain/user"
	"career-match/internal/infrastructure/cache"
	"career-match/internal/logger"
	"career-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchingUsecase interface {
	RankUser(ctx context.Context, userID uuid.UUID) ([]matching.MatchResult, error)
	Recommendations(ctx context.Context, userID uuid.UUID) ([]repository.StoredMatch, error)
}

type Matching struct {
	users  user.Repository
	recs   repository.RecommendationRepository
	holder *matching.CatalogHolder
	cache  rankingCache
	topK   int
	log    *zap.Logger
}

func NewMatchingUsecase(users user.Repository, recs repository.RecommendationRepository, holder *matching.CatalogHolder, cache rankingCache, topK int, log *zap.Logger) *Matching {
	if topK <= 0 {
		topK = matching.DefaultTopK
	}
	return &Matching{users: users, recs: recs, holder: holder, cache: cache, topK: topK, log: logger.OrNop(log)}
}

// RankUser ranks the catalog against the user's profile vector and stores
// the result as the user's current ranking.
func (u *Matching) RankUser(ctx context.Context, userID uuid.UUID) ([]matching.MatchResult, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	profile, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		u.log.Error("load profile failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if !profile.HasEmbedding() {
		return nil, ErrProfileNotEmbedded
	}

	cat := u.holder.Load()
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, matching.ErrEmptyCatalog)
	}
	if profile.EmbeddingSpace != cat.Space() {
		return nil, fmt.Errorf("%w: profile %q, catalog %q", matching.ErrSpaceMismatch, profile.EmbeddingSpace, cat.Space())
	}

	key := cache.RankingKey(userID, cat.Version(), profile.Embedding, u.topK)
	var results []matching.MatchResult
	cached := false
	if u.cache != nil {
		hit, err := u.cache.GetJSON(ctx, key, &results)
		if err != nil {
			u.log.Warn("ranking cache read failed", zap.Error(err))
		}
		cached = hit
	}

	// A cached ranking is only served as is while the stored one matches it.
	if cached && u.rankingStored(ctx, userID, cat.Version(), results) {
		return results, nil
	}
	if !cached {
		results, err = matching.Rank(cat, profile.Embedding, u.topK)
		if err != nil {
			return nil, err
		}
	}

	if err := u.recs.ReplaceRanking(ctx, userID, cat.Version(), results); err != nil {
		u.log.Error("store ranking failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if u.cache != nil && !cached {
		if err := u.cache.SetJSON(ctx, key, results, 0); err != nil {
			u.log.Warn("ranking cache write failed", zap.Error(err))
		}
	}

	u.log.Info("user ranked",
		zap.String("user_id", userID.String()),
		zap.String("catalog_version", cat.Version()),
		zap.Int("results", len(results)),
	)
	return results, nil
}

func (u *Matching) rankingStored(ctx context.Context, userID uuid.UUID, version string, results []matching.MatchResult) bool {
	stored, err := u.recs.LatestRanking(ctx, userID)
	if err != nil {
		u.log.Warn("load ranking failed", zap.String("user_id", userID.String()), zap.Error(err))
		return false
	}
	if len(stored) != len(results) {
		return false
	}
	for i, m := range stored {
		if m.JobID != results[i].JobID || m.CatalogVersion != version {
			return false
		}
	}
	return true
}

func (u *Matching) Recommendations(ctx context.Context, userID uuid.UUID) ([]repository.StoredMatch, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.recs.LatestRanking(ctx, userID)
	if err != nil {
		u.log.Error("load ranking failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if len(items) == 0 {
		return nil, ErrNoMatches
	}
	return items, nil
}
