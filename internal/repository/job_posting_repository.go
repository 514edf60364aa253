package repository

import (
	"context"
	"errors"
	"time"

	"career-match/internal/database"
	"career-match/internal/domain/gap"
	"career-match/internal/domain/job"

	"github.com/google/uuid"
)

var ErrJobPostingNotFound = errors.New("job posting not found")

type CatalogStats struct {
	Total          int
	WithEmbedding  int
	EmbeddingSpace []string
}

type JobPostingRepository interface {
	ListCatalog(ctx context.Context, space string) ([]job.Posting, error)
	FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error)
	Upsert(ctx context.Context, p job.Posting, space string) error
	Stats(ctx context.Context) (CatalogStats, error)
	Requirements(ctx context.Context, jobID uuid.UUID) (gap.Requirements, error)
}

type PostgresJobPostingRepository struct {
	db database.DB
}

func NewPostgresJobPostingRepository(db database.DB) *PostgresJobPostingRepository {
	return &PostgresJobPostingRepository{db: db}
}

const jobPostingColumns = `id, title, company, description, required_skills, required_knowledge, embedding::text, created_at`

// ListCatalog returns postings embedded in the given space, in insertion order.
func (r *PostgresJobPostingRepository) ListCatalog(ctx context.Context, space string) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings
		 WHERE embedding IS NOT NULL AND embedding_space = $1
		 ORDER BY created_at ASC, id ASC`,
		space,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobPostingRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1`, id)
	p, err := scanPosting(row)
	if err != nil {
		if isNoRows(err) {
			return job.Posting{}, ErrJobPostingNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobPostingRepository) Upsert(ctx context.Context, p job.Posting, space string) error {
	if p.ID == uuid.Nil {
		return errors.New("job posting id required")
	}
	skills, err := encodeLevels(p.RequiredSkills)
	if err != nil {
		return err
	}
	knowledge, err := encodeLevels(p.RequiredKnowledge)
	if err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO job_postings (id, title, company, description, required_skills, required_knowledge, embedding, embedding_space, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			description = EXCLUDED.description,
			required_skills = EXCLUDED.required_skills,
			required_knowledge = EXCLUDED.required_knowledge,
			embedding = EXCLUDED.embedding,
			embedding_space = EXCLUDED.embedding_space`,
		p.ID,
		p.Title,
		p.Company,
		p.Description,
		skills,
		knowledge,
		encodeVector(p.Embedding),
		space,
		p.CreatedAt,
	)
	return err
}

func (r *PostgresJobPostingRepository) Stats(ctx context.Context) (CatalogStats, error) {
	var st CatalogStats
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(embedding) FROM job_postings`,
	)
	if err := row.Scan(&st.Total, &st.WithEmbedding); err != nil {
		return CatalogStats{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT embedding_space FROM job_postings WHERE embedding IS NOT NULL ORDER BY embedding_space`,
	)
	if err != nil {
		return CatalogStats{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return CatalogStats{}, err
		}
		st.EmbeddingSpace = append(st.EmbeddingSpace, s)
	}
	return st, rows.Err()
}

// Requirements resolves the requirement maps of a job. A missing job is a
// MissingEntityError; NULL requirement columns come back as nil maps.
func (r *PostgresJobPostingRepository) Requirements(ctx context.Context, jobID uuid.UUID) (gap.Requirements, error) {
	var skills, knowledge []byte
	err := r.db.QueryRow(ctx,
		`SELECT required_skills, required_knowledge FROM job_postings WHERE id = $1`,
		jobID,
	).Scan(&skills, &knowledge)
	if err != nil {
		if isNoRows(err) {
			return gap.Requirements{}, gap.NewMissingEntityError(gap.EntityJob, jobID)
		}
		return gap.Requirements{}, err
	}

	var req gap.Requirements
	if req.Skills, err = decodeLevels(skills); err != nil {
		return gap.Requirements{}, err
	}
	if req.Knowledge, err = decodeLevels(knowledge); err != nil {
		return gap.Requirements{}, err
	}
	return req, nil
}

func scanPosting(row database.Row) (job.Posting, error) {
	var (
		p         job.Posting
		skills    []byte
		knowledge []byte
		vec       *string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Description, &skills, &knowledge, &vec, &p.CreatedAt); err != nil {
		return job.Posting{}, err
	}
	var err error
	if p.RequiredSkills, err = decodeLevels(skills); err != nil {
		return job.Posting{}, err
	}
	if p.RequiredKnowledge, err = decodeLevels(knowledge); err != nil {
		return job.Posting{}, err
	}
	if p.Embedding, err = decodeVector(vec); err != nil {
		return job.Posting{}, err
	}
	return p, nil
}
