package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "career-match")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "HTTP_PORT") {
		t.Fatalf("expected HTTP_PORT to be listed, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_EMBEDDING_MODEL", "")
	t.Setenv("EMBEDDING_SPACE", "")
	t.Setenv("MATCH_TOP_K", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Matching.TopK != 3 {
		t.Fatalf("expected default top-k 3, got %d", cfg.Matching.TopK)
	}
	if cfg.Redis.TTL != 10*time.Minute {
		t.Fatalf("expected default redis ttl 10m, got %s", cfg.Redis.TTL)
	}
	if cfg.Database.ConnectTimeout != 5*time.Second {
		t.Fatalf("expected default connect timeout 5s, got %s", cfg.Database.ConnectTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MATCH_TOP_K", "5")
	t.Setenv("EMBEDDING_SPACE", "minilm-l6")
	t.Setenv("DB_POOL_MAX_CONNS", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Matching.TopK != 5 || cfg.Matching.EmbeddingSpace != "minilm-l6" {
		t.Fatalf("unexpected matching config %#v", cfg.Matching)
	}
	if cfg.Database.PoolMaxConns != 20 {
		t.Fatalf("expected pool max conns 20, got %d", cfg.Database.PoolMaxConns)
	}
}
