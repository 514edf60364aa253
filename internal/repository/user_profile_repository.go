package repository

import (
	"context"
	"time"

	"career-match/internal/database"
	"career-match/internal/domain/level"
	"career-match/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserProfileRepository struct {
	db database.DB
}

func NewPostgresUserProfileRepository(db database.DB) *PostgresUserProfileRepository {
	return &PostgresUserProfileRepository{db: db}
}

var _ user.Repository = (*PostgresUserProfileRepository)(nil)

func (r *PostgresUserProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (user.Profile, error) {
	var (
		p         user.Profile
		skills    []byte
		knowledge []byte
		vec       *string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, profile_text, skills, knowledge, embedding::text, embedding_space, updated_at
		 FROM user_profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.ProfileText, &skills, &knowledge, &vec, &p.EmbeddingSpace, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}

	if p.Skills, err = decodeLevels(skills); err != nil {
		return user.Profile{}, err
	}
	if p.Knowledge, err = decodeLevels(knowledge); err != nil {
		return user.Profile{}, err
	}
	if p.Embedding, err = decodeVector(vec); err != nil {
		return user.Profile{}, err
	}
	return p, nil
}

// UpdateEmbedding stores the profile text and its vector, creating the
// profile row on first use.
func (r *PostgresUserProfileRepository) UpdateEmbedding(ctx context.Context, id uuid.UUID, profileText string, embedding []float32, space string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_profiles (id, profile_text, embedding, embedding_space, updated_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO UPDATE SET
			profile_text = EXCLUDED.profile_text,
			embedding = EXCLUDED.embedding,
			embedding_space = EXCLUDED.embedding_space,
			updated_at = EXCLUDED.updated_at`,
		id,
		profileText,
		encodeVector(embedding),
		space,
		time.Now().UTC(),
	)
	return err
}

// ReplaceHoldings overwrites both level maps; previous entries are dropped.
func (r *PostgresUserProfileRepository) ReplaceHoldings(ctx context.Context, id uuid.UUID, skills, knowledge map[string]level.Level) error {
	sb, err := encodeLevels(skills)
	if err != nil {
		return err
	}
	kb, err := encodeLevels(knowledge)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO user_profiles (id, skills, knowledge, updated_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (id) DO UPDATE SET
			skills = EXCLUDED.skills,
			knowledge = EXCLUDED.knowledge,
			updated_at = EXCLUDED.updated_at`,
		id, sb, kb, time.Now().UTC(),
	)
	return err
}
