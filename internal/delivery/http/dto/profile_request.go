package dto

import (
	"time"

	"career-match/internal/domain/level"

	"github.com/google/uuid"
)

type UpdateProfileTextRequest struct {
	ProfileText string `json:"profile_text"`
}

// ReplaceHoldingsRequest accepts level names or numeric ordinals.
type ReplaceHoldingsRequest struct {
	Skills    map[string]level.Level `json:"skills"`
	Knowledge map[string]level.Level `json:"knowledge"`
}

type ProfileResponse struct {
	ID                 uuid.UUID              `json:"id"`
	ProfileText        string                 `json:"profile_text"`
	Skills             map[string]level.Level `json:"skills"`
	Knowledge          map[string]level.Level `json:"knowledge"`
	HasEmbedding       bool                   `json:"has_embedding"`
	EmbeddingSpace     string                 `json:"embedding_space,omitempty"`
	EmbeddingDimension int                    `json:"embedding_dimension"`
	UpdatedAt          time.Time              `json:"updated_at"`
}
