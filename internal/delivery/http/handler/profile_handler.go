package handler

import (
	"career-match/internal/delivery/http/dto"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/domain/level"
	"career-match/internal/domain/user"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/profile")
	grp.Put("/text", h.UpdateText)
	grp.Put("/holdings", h.ReplaceHoldings)
}

func (h *ProfileHandler) UpdateText(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileTextRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.UpdateProfileText(c.Context(), userID, req.ProfileText)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "profile updated", toProfileResponse(p))
}

func (h *ProfileHandler) ReplaceHoldings(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req dto.ReplaceHoldingsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.ReplaceHoldings(c.Context(), userID, req.Skills, req.Knowledge)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "holdings replaced", toProfileResponse(p))
}

func toProfileResponse(p user.Profile) dto.ProfileResponse {
	out := dto.ProfileResponse{
		ID:                 p.ID,
		ProfileText:        p.ProfileText,
		Skills:             p.Skills,
		Knowledge:          p.Knowledge,
		HasEmbedding:       p.HasEmbedding(),
		EmbeddingSpace:     p.EmbeddingSpace,
		EmbeddingDimension: len(p.Embedding),
		UpdatedAt:          p.UpdatedAt,
	}
	if out.Skills == nil {
		out.Skills = map[string]level.Level{}
	}
	if out.Knowledge == nil {
		out.Knowledge = map[string]level.Level{}
	}
	return out
}
