package usecase

import (
	"context"
	"errors"
	"strings"

	"career-match/internal/domain/level"
	"career-match/internal/domain/user"
	"career-match/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileUsecase interface {
	UpdateProfileText(ctx context.Context, userID uuid.UUID, text string) (user.Profile, error)
	ReplaceHoldings(ctx context.Context, userID uuid.UUID, skills, knowledge map[string]level.Level) (user.Profile, error)
}

type Profile struct {
	users    user.Repository
	embedder Embedder
	log      *zap.Logger
}

func NewProfileUsecase(users user.Repository, embedder Embedder, log *zap.Logger) *Profile {
	return &Profile{users: users, embedder: embedder, log: logger.OrNop(log)}
}

// UpdateProfileText stores the text and its vector together, tagged with the
// embedder's space so rankings can refuse vectors from a different model.
func (u *Profile) UpdateProfileText(ctx context.Context, userID uuid.UUID, text string) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return user.Profile{}, ErrInvalidInput
	}
	if u.embedder == nil {
		return user.Profile{}, ErrInternal
	}

	vec, err := u.embedder.Embed(ctx, text)
	if err != nil {
		u.log.Error("profile embedding failed", zap.String("user_id", userID.String()), zap.Error(err))
		return user.Profile{}, ErrInternal
	}
	if err := u.users.UpdateEmbedding(ctx, userID, text, vec, u.embedder.Space()); err != nil {
		u.log.Error("store profile embedding failed", zap.String("user_id", userID.String()), zap.Error(err))
		return user.Profile{}, ErrInternal
	}
	return u.load(ctx, userID)
}

// ReplaceHoldings swaps both level maps for the given ones. Blank names are
// dropped; nothing from the previous maps survives.
func (u *Profile) ReplaceHoldings(ctx context.Context, userID uuid.UUID, skills, knowledge map[string]level.Level) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}
	skills = cleanHoldings(skills)
	knowledge = cleanHoldings(knowledge)

	if err := u.users.ReplaceHoldings(ctx, userID, skills, knowledge); err != nil {
		u.log.Error("replace holdings failed", zap.String("user_id", userID.String()), zap.Error(err))
		return user.Profile{}, ErrInternal
	}
	return u.load(ctx, userID)
}

func (u *Profile) load(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	p, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

func cleanHoldings(in map[string]level.Level) map[string]level.Level {
	out := make(map[string]level.Level, len(in))
	for name, lv := range in {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out[name] = lv
	}
	return out
}
