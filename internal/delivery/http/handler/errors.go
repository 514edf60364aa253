package handler

import (
	"errors"
	"strconv"

	"career-match/internal/delivery/http/middleware"
	"career-match/internal/domain/gap"
	"career-match/internal/domain/matching"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var dim *matching.DimensionMismatchError
	var missing *gap.MissingEntityError

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid input", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.As(err, &missing):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", fiber.Map{"kind": missing.Kind, "id": missing.ID}, err)
	case errors.Is(err, usecase.ErrGapReportNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Gap report not found", nil, err)
	case errors.Is(err, usecase.ErrNoMatches):
		return middleware.NewAppError(fiber.StatusConflict, "No job matches yet", fiber.Map{"state": gap.StateNoMatches}, err)
	case errors.Is(err, usecase.ErrNoQuestions):
		return middleware.NewAppError(fiber.StatusNotFound, "No questions for attempt", nil, err)
	case errors.Is(err, usecase.ErrQuestionsExist):
		return middleware.NewAppError(fiber.StatusConflict, "Attempt already has questions", nil, err)
	case errors.Is(err, usecase.ErrProfileTextMissing):
		return middleware.NewAppError(fiber.StatusConflict, "Profile has no text", nil, err)
	case errors.Is(err, usecase.ErrQuestionsUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Question generation unavailable", nil, err)
	case errors.Is(err, usecase.ErrProfileNotEmbedded):
		return middleware.NewAppError(fiber.StatusConflict, "Profile has no embedding", nil, err)
	case errors.Is(err, usecase.ErrRefreshInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Catalog refresh in progress", nil, err)
	case errors.Is(err, usecase.ErrCatalogUnavailable), errors.Is(err, matching.ErrEmptyCatalog):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Job catalog unavailable", nil, err)
	case errors.Is(err, usecase.ErrRoadmapUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Roadmap generation unavailable", nil, err)
	case errors.As(err, &dim):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Embedding dimension mismatch", fiber.Map{"want": dim.Want, "got": dim.Got}, err)
	case errors.Is(err, matching.ErrNonFiniteVector):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Embedding has non-finite values", nil, err)
	case errors.Is(err, matching.ErrSpaceMismatch):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Embedding space mismatch", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func requireUser(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func parseUUIDParam(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return id, nil
}

func parseAttemptParam(c fiber.Ctx) (int, error) {
	n, err := strconv.Atoi(c.Params("attempt"))
	if err != nil || n < 1 {
		return 0, middleware.NewAppError(fiber.StatusBadRequest, "Invalid attempt", nil, err)
	}
	return n, nil
}
