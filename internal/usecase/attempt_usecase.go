package usecase

import (
	"context"
	"errors"
	"strings"

	"career-match/internal/domain/attempt"
	"career-match/internal/domain/user"
	"career-match/internal/logger"
	"career-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnswerInput struct {
	QuestionID     uuid.UUID
	SelectedOption string
}

type AttemptUsecase interface {
	Questions(ctx context.Context, userID uuid.UUID, attemptNo int) ([]attempt.Question, error)
	GenerateQuestions(ctx context.Context, userID uuid.UUID, attemptNo int) ([]attempt.Question, error)
	SaveQuestions(ctx context.Context, userID uuid.UUID, attemptNo int, in []attempt.Question) ([]attempt.Question, error)
	SubmitAnswers(ctx context.Context, userID uuid.UUID, attemptNo int, in []AnswerInput) (int, error)
	Latest(ctx context.Context, userID uuid.UUID) (int, error)
	Score(ctx context.Context, userID uuid.UUID, attemptNo int) (attempt.Result, error)
}

type Attempt struct {
	repo      repository.AssessmentRepository
	users     user.Repository
	generator QuestionGenerator
	log       *zap.Logger
}

func NewAttemptUsecase(repo repository.AssessmentRepository, users user.Repository, generator QuestionGenerator, log *zap.Logger) *Attempt {
	return &Attempt{repo: repo, users: users, generator: generator, log: logger.OrNop(log)}
}

func (u *Attempt) Questions(ctx context.Context, userID uuid.UUID, attemptNo int) ([]attempt.Question, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if attemptNo < attempt.FirstAttempt {
		return nil, ErrInvalidInput
	}
	qs, err := u.repo.QuestionsByAttempt(ctx, userID, attemptNo)
	if err != nil {
		return nil, ErrInternal
	}
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return qs, nil
}

// GenerateQuestions asks the generator for a question set built from the
// user's profile text and stores it for the attempt. An attempt's set is
// written once.
func (u *Attempt) GenerateQuestions(ctx context.Context, userID uuid.UUID, attemptNo int) ([]attempt.Question, error) {
	if err := u.checkFresh(ctx, userID, attemptNo); err != nil {
		return nil, err
	}
	if u.generator == nil || u.users == nil {
		return nil, ErrQuestionsUnavailable
	}

	profile, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternal
	}
	if strings.TrimSpace(profile.ProfileText) == "" {
		return nil, ErrProfileTextMissing
	}

	generated, err := u.generator.Generate(ctx, profile.ProfileText, attempt.DefaultQuestionCount)
	if err != nil {
		u.log.Error("question generation failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrQuestionsUnavailable
	}
	qs := make([]attempt.Question, 0, len(generated))
	for _, q := range generated {
		if q = q.Normalize(); q.Validate() == nil {
			qs = append(qs, q)
		}
	}
	if len(qs) == 0 {
		u.log.Error("generator returned no usable questions", zap.String("user_id", userID.String()))
		return nil, ErrQuestionsUnavailable
	}
	return u.store(ctx, userID, attemptNo, qs)
}

// SaveQuestions stores a supplied question set for the attempt. Every
// question must be scorable.
func (u *Attempt) SaveQuestions(ctx context.Context, userID uuid.UUID, attemptNo int, in []attempt.Question) ([]attempt.Question, error) {
	if len(in) == 0 {
		return nil, ErrInvalidInput
	}
	qs := make([]attempt.Question, 0, len(in))
	for _, q := range in {
		q = q.Normalize()
		if q.Validate() != nil {
			return nil, ErrInvalidInput
		}
		qs = append(qs, q)
	}
	if err := u.checkFresh(ctx, userID, attemptNo); err != nil {
		return nil, err
	}
	return u.store(ctx, userID, attemptNo, qs)
}

func (u *Attempt) checkFresh(ctx context.Context, userID uuid.UUID, attemptNo int) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if attemptNo < attempt.FirstAttempt {
		return ErrInvalidInput
	}
	existing, err := u.repo.QuestionsByAttempt(ctx, userID, attemptNo)
	if err != nil {
		u.log.Error("load questions failed", zap.String("user_id", userID.String()), zap.Error(err))
		return ErrInternal
	}
	if len(existing) > 0 {
		return ErrQuestionsExist
	}
	return nil
}

func (u *Attempt) store(ctx context.Context, userID uuid.UUID, attemptNo int, qs []attempt.Question) ([]attempt.Question, error) {
	for i := range qs {
		qs[i].ID = uuid.New()
		qs[i].UserID = userID
		qs[i].Attempt = attemptNo
	}
	if err := u.repo.SaveQuestions(ctx, qs); err != nil {
		u.log.Error("store questions failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	u.log.Info("questions stored",
		zap.String("user_id", userID.String()),
		zap.Int("attempt", attemptNo),
		zap.Int("count", len(qs)),
	)
	return qs, nil
}

// SubmitAnswers appends answers to an attempt. Every answer must refer to a
// question generated for that attempt. Returns the number stored.
func (u *Attempt) SubmitAnswers(ctx context.Context, userID uuid.UUID, attemptNo int, in []AnswerInput) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrUnauthorized
	}
	if attemptNo < attempt.FirstAttempt || len(in) == 0 {
		return 0, ErrInvalidInput
	}

	questions, err := u.repo.QuestionsByAttempt(ctx, userID, attemptNo)
	if err != nil {
		u.log.Error("load questions failed", zap.String("user_id", userID.String()), zap.Error(err))
		return 0, ErrInternal
	}
	if len(questions) == 0 {
		return 0, ErrNoQuestions
	}
	known := make(map[uuid.UUID]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}

	answers := make([]attempt.Answer, 0, len(in))
	for _, a := range in {
		opt := strings.TrimSpace(a.SelectedOption)
		if opt == "" {
			return 0, ErrInvalidInput
		}
		if _, ok := known[a.QuestionID]; !ok {
			return 0, ErrInvalidInput
		}
		answers = append(answers, attempt.Answer{
			ID:             uuid.New(),
			UserID:         userID,
			QuestionID:     a.QuestionID,
			Attempt:        attemptNo,
			SelectedOption: opt,
		})
	}

	if err := u.repo.SaveAnswers(ctx, answers); err != nil {
		u.log.Error("store answers failed", zap.String("user_id", userID.String()), zap.Error(err))
		return 0, ErrInternal
	}
	return len(answers), nil
}

func (u *Attempt) Latest(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrUnauthorized
	}
	answers, err := u.repo.AnswersByUser(ctx, userID)
	if err != nil {
		return 0, ErrInternal
	}
	return attempt.LatestAttempt(answers), nil
}

func (u *Attempt) Score(ctx context.Context, userID uuid.UUID, attemptNo int) (attempt.Result, error) {
	if userID == uuid.Nil {
		return attempt.Result{}, ErrUnauthorized
	}
	if attemptNo < attempt.FirstAttempt {
		return attempt.Result{}, ErrInvalidInput
	}
	questions, err := u.repo.QuestionsByAttempt(ctx, userID, attemptNo)
	if err != nil {
		return attempt.Result{}, ErrInternal
	}
	if len(questions) == 0 {
		return attempt.Result{}, ErrNoQuestions
	}
	answers, err := u.repo.AnswersByAttempt(ctx, userID, attemptNo)
	if err != nil {
		return attempt.Result{}, ErrInternal
	}
	return attempt.Score(questions, answers), nil
}
