package usecase

import (
	"context"
	"errors"
	"testing"

	"career-match/internal/domain/matching"
	"career-match/internal/infrastructure/cache"

	"github.com/google/uuid"
)

const testSpace = "test/space"

func TestCatalogUsecase_Refresh_SwapsAndInvalidates(t *testing.T) {
	jobs := newFakeJobs(
		posting("Data Analyst", []float32{1, 0}, nil, nil),
		posting("Backend Engineer", []float32{0, 1}, nil, nil),
	)
	holder := matching.NewCatalogHolder(nil)
	c := newFakeCache()
	c.data[cache.RankingKey(uuid.New(), "old", []float32{1}, 3)] = []byte("[]")
	n := &fakeNotifier{}

	uc := NewCatalogUsecase(jobs, holder, c, n, testSpace, nil)
	info, err := uc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if info.Size != 2 || info.Dimension != 2 || info.Space != testSpace || info.Version == "" {
		t.Fatalf("unexpected info %#v", info)
	}
	if holder.Load() == nil || holder.Load().Version() != info.Version {
		t.Fatalf("expected catalog to be swapped in")
	}
	if len(c.data) != 0 || len(c.deleted) != 1 || c.deleted[0] != cache.RankingPattern {
		t.Fatalf("expected ranking cache invalidated, got data=%v deleted=%v", c.data, c.deleted)
	}
	if len(n.events) != 1 || n.events[0] != EventCatalogRefreshed {
		t.Fatalf("expected catalog_refreshed event, got %v", n.events)
	}
	if uc.Current() != info {
		t.Fatalf("Current should report the swapped catalog")
	}
}

func TestCatalogUsecase_Refresh_RejectsMixedDimensions(t *testing.T) {
	jobs := newFakeJobs(
		posting("A", []float32{1, 0}, nil, nil),
		posting("B", []float32{1, 0, 0}, nil, nil),
	)
	prev, _ := matching.NewCatalog(testSpace, "v0", nil)
	holder := matching.NewCatalogHolder(prev)

	uc := NewCatalogUsecase(jobs, holder, nil, nil, testSpace, nil)
	_, err := uc.Refresh(context.Background())
	if !errors.Is(err, matching.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if holder.Load() != prev {
		t.Fatalf("failed refresh must keep the previous catalog")
	}
}

func TestCatalogUsecase_Refresh_LoadError(t *testing.T) {
	jobs := newFakeJobs()
	jobs.err = errBoom
	uc := NewCatalogUsecase(jobs, matching.NewCatalogHolder(nil), nil, nil, testSpace, nil)
	if _, err := uc.Refresh(context.Background()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestCatalogUsecase_Refresh_InProgress(t *testing.T) {
	uc := NewCatalogUsecase(newFakeJobs(), matching.NewCatalogHolder(nil), nil, nil, testSpace, nil)
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, err := uc.Refresh(context.Background()); !errors.Is(err, ErrRefreshInProgress) {
		t.Fatalf("expected ErrRefreshInProgress, got %v", err)
	}
}
