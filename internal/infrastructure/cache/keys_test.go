package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRankingKey(t *testing.T) {
	u := uuid.New()
	a := RankingKey(u, "v1", []float32{1, 2, 3}, 3)
	b := RankingKey(u, "v1", []float32{1, 2, 3}, 3)
	if a != b {
		t.Fatalf("expected stable key")
	}
	if !strings.HasPrefix(a, "ranking:"+u.String()+":v1:3:") {
		t.Fatalf("unexpected key %s", a)
	}

	for _, other := range []string{
		RankingKey(u, "v2", []float32{1, 2, 3}, 3),
		RankingKey(u, "v1", []float32{1, 2, 4}, 3),
		RankingKey(u, "v1", []float32{1, 2, 3}, 5),
		RankingKey(uuid.New(), "v1", []float32{1, 2, 3}, 3),
	} {
		if other == a {
			t.Fatalf("expected distinct key for changed input")
		}
	}
}

func TestRedis_UnavailableBypass(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	var out map[string]any
	hit, err := r.GetJSON(ctx, "k", &out)
	if hit || err != nil {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Second); err != nil {
		t.Fatalf("expected no-op set, got %v", err)
	}
	if err := r.DeleteByPattern(ctx, RankingPattern); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error")
	}
}
