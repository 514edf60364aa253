package user

import (
	"time"

	"career-match/internal/domain/level"

	"github.com/google/uuid"
)

// Profile is the assessed state of a user. Skills and Knowledge hold the
// latest inferred levels and are replaced wholesale on each re-analysis.
type Profile struct {
	ID             uuid.UUID
	ProfileText    string
	Skills         map[string]level.Level
	Knowledge      map[string]level.Level
	Embedding      []float32
	EmbeddingSpace string
	UpdatedAt      time.Time
}

// HasEmbedding reports whether a profile vector has been generated.
func (p Profile) HasEmbedding() bool {
	return len(p.Embedding) > 0
}
