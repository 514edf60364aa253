package user

import (
	"context"
	"errors"

	"career-match/internal/domain/level"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, profileText string, embedding []float32, space string) error
	ReplaceHoldings(ctx context.Context, id uuid.UUID, skills, knowledge map[string]level.Level) error
}
