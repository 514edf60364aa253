package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"career-match/internal/domain/level"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

// encodeLevels stores level maps as JSON objects of level names.
func encodeLevels(m map[string]level.Level) ([]byte, error) {
	if m == nil {
		m = map[string]level.Level{}
	}
	return json.Marshal(m)
}

// decodeLevels accepts both level names and legacy numeric ordinals. A NULL
// column decodes to a nil map.
func decodeLevels(b []byte) (map[string]level.Level, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	raw := map[string]any{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode level map: %w", err)
	}
	return level.NormalizeMap(raw), nil
}

func encodeVector(v []float32) any {
	if len(v) == 0 {
		return nil
	}
	return pgvector.NewVector(v)
}

// decodeVector parses the text form of a vector column; embedding::text is
// selected so NULL arrives as a nil string.
func decodeVector(s *string) ([]float32, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	var v pgvector.Vector
	if err := v.Scan(*s); err != nil {
		return nil, fmt.Errorf("decode vector: %w", err)
	}
	return v.Slice(), nil
}
