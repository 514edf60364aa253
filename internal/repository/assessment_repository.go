package repository

import (
	"context"
	"encoding/json"

	"career-match/internal/database"
	"career-match/internal/domain/attempt"

	"github.com/google/uuid"
)

type AssessmentRepository interface {
	QuestionsByAttempt(ctx context.Context, userID uuid.UUID, attemptNo int) ([]attempt.Question, error)
	AnswersByUser(ctx context.Context, userID uuid.UUID) ([]attempt.Answer, error)
	AnswersByAttempt(ctx context.Context, userID uuid.UUID, attemptNo int) ([]attempt.Answer, error)
	SaveAnswers(ctx context.Context, answers []attempt.Answer) error
	SaveQuestions(ctx context.Context, questions []attempt.Question) error
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

func (r *PostgresAssessmentRepository) QuestionsByAttempt(ctx context.Context, userID uuid.UUID, attemptNo int) ([]attempt.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, attempt, question_text, options, answer, difficulty, category
		 FROM generated_questions
		 WHERE user_id = $1 AND attempt = $2
		 ORDER BY created_at ASC, id ASC`,
		userID, attemptNo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]attempt.Question, 0)
	for rows.Next() {
		var (
			q    attempt.Question
			opts []byte
		)
		if err := rows.Scan(&q.ID, &q.UserID, &q.Attempt, &q.Text, &opts, &q.Answer, &q.Difficulty, &q.Category); err != nil {
			return nil, err
		}
		if len(opts) > 0 {
			if err := json.Unmarshal(opts, &q.Options); err != nil {
				return nil, err
			}
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssessmentRepository) AnswersByUser(ctx context.Context, userID uuid.UUID) ([]attempt.Answer, error) {
	return r.queryAnswers(ctx,
		`SELECT id, user_id, question_id, attempt, selected_option
		 FROM follow_up_answers
		 WHERE user_id = $1
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)
}

func (r *PostgresAssessmentRepository) AnswersByAttempt(ctx context.Context, userID uuid.UUID, attemptNo int) ([]attempt.Answer, error) {
	return r.queryAnswers(ctx,
		`SELECT id, user_id, question_id, attempt, selected_option
		 FROM follow_up_answers
		 WHERE user_id = $1 AND attempt = $2
		 ORDER BY created_at ASC, id ASC`,
		userID, attemptNo,
	)
}

func (r *PostgresAssessmentRepository) queryAnswers(ctx context.Context, query string, args ...any) ([]attempt.Answer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]attempt.Answer, 0)
	for rows.Next() {
		var a attempt.Answer
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.Attempt, &a.SelectedOption); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveAnswers appends answer records in one transaction. Existing answers
// are kept; scoring takes the last one per question.
func (r *PostgresAssessmentRepository) SaveAnswers(ctx context.Context, answers []attempt.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, a := range answers {
			id := a.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO follow_up_answers (id, user_id, question_id, attempt, selected_option)
				 VALUES ($1,$2,$3,$4,$5)`,
				id, a.UserID, a.QuestionID, a.Attempt, a.SelectedOption,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveQuestions stores a question set in one transaction. Rows are stamped
// with the clock time so the set reads back in insertion order.
func (r *PostgresAssessmentRepository) SaveQuestions(ctx context.Context, questions []attempt.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, q := range questions {
			id := q.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			opts, err := json.Marshal(nonNilStrings(q.Options))
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO generated_questions (id, user_id, attempt, question_text, options, answer, difficulty, category, created_at)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,clock_timestamp())`,
				id, q.UserID, q.Attempt, q.Text, opts, q.Answer, q.Difficulty, q.Category,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
