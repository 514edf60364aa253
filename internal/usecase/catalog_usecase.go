package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"career-match/internal/domain/matching"
	"career-match/internal/infrastructure/cache"
	"career-match/internal/logger"
	"career-match/internal/repository"

	"go.uber.org/zap"
)

const EventCatalogRefreshed = "catalog_refreshed"

type CatalogInfo struct {
	Version   string `json:"version"`
	Space     string `json:"embedding_space"`
	Size      int    `json:"size"`
	Dimension int    `json:"dimension"`
}

type CatalogUsecase interface {
	Refresh(ctx context.Context) (CatalogInfo, error)
	Current() CatalogInfo
}

// Catalog owns the in-memory job catalog. Refresh builds a complete new
// snapshot and swaps it in, so concurrent rankings see either the old or the
// new catalog, never a mix.
type Catalog struct {
	jobs   repository.JobPostingRepository
	holder *matching.CatalogHolder
	cache  rankingCache
	notify Notifier
	space  string
	log    *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewCatalogUsecase(jobs repository.JobPostingRepository, holder *matching.CatalogHolder, cache rankingCache, notify Notifier, space string, log *zap.Logger) *Catalog {
	return &Catalog{
		jobs:   jobs,
		holder: holder,
		cache:  cache,
		notify: notifierOrNop(notify),
		space:  space,
		log:    logger.OrNop(log),
		now:    time.Now,
	}
}

func (u *Catalog) Refresh(ctx context.Context) (CatalogInfo, error) {
	if !u.mu.TryLock() {
		return CatalogInfo{}, ErrRefreshInProgress
	}
	defer u.mu.Unlock()

	postings, err := u.jobs.ListCatalog(ctx, u.space)
	if err != nil {
		u.log.Error("catalog load failed", zap.Error(err))
		return CatalogInfo{}, ErrInternal
	}

	version := strconv.FormatInt(u.now().UTC().UnixNano(), 36)
	next, err := matching.NewCatalog(u.space, version, postings)
	if err != nil {
		u.log.Error("catalog rejected", zap.Int("postings", len(postings)), zap.Error(err))
		return CatalogInfo{}, err
	}

	prev := u.holder.Swap(next)
	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, cache.RankingPattern); err != nil {
			u.log.Warn("ranking cache invalidation failed", zap.Error(err))
		}
	}

	info := infoOf(next)
	fields := []zap.Field{
		zap.String("version", info.Version),
		zap.Int("size", info.Size),
		zap.Int("dimension", info.Dimension),
	}
	if prev != nil {
		fields = append(fields, zap.String("previous_version", prev.Version()))
	}
	u.log.Info("catalog refreshed", fields...)
	u.notify.Notify(EventCatalogRefreshed, info)

	return info, nil
}

func (u *Catalog) Current() CatalogInfo {
	return infoOf(u.holder.Load())
}

func infoOf(c *matching.Catalog) CatalogInfo {
	if c == nil {
		return CatalogInfo{}
	}
	return CatalogInfo{
		Version:   c.Version(),
		Space:     c.Space(),
		Size:      c.Len(),
		Dimension: c.Dimension(),
	}
}
