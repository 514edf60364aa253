package usecase

import "errors"

var (
	ErrInternal           = errors.New("internal error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrNoMatches          = errors.New("no job matches for user")
	ErrProfileNotEmbedded = errors.New("profile has no embedding")
	ErrCatalogUnavailable = errors.New("job catalog unavailable")
	ErrGapReportNotFound  = errors.New("gap report not found")
	ErrNoQuestions        = errors.New("no questions for attempt")
	ErrRefreshInProgress  = errors.New("catalog refresh already in progress")
	ErrRoadmapUnavailable = errors.New("roadmap generation unavailable")

	ErrQuestionsExist       = errors.New("attempt already has questions")
	ErrQuestionsUnavailable = errors.New("question generation unavailable")
	ErrProfileTextMissing   = errors.New("profile has no text")
)
