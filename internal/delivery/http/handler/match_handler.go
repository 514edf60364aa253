package handler

import (
	"errors"

	"career-match/internal/delivery/http/dto"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Post("", h.Rank)
	grp.Get("", h.List)
}

func (h *MatchHandler) Rank(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	res, err := h.uc.RankUser(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.MatchListResponse{Items: make([]dto.MatchResponse, 0, len(res))}
	for i, m := range res {
		out.Items = append(out.Items, dto.MatchResponse{
			Rank:                 i + 1,
			JobID:                m.JobID,
			JobTitle:             m.Title,
			SimilarityScore:      m.Score,
			SimilarityPercentage: m.Percentage,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.Recommendations(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoMatches) {
			return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchListResponse{Items: []dto.MatchResponse{}})
		}
		return mapUsecaseError(err)
	}

	out := dto.MatchListResponse{Items: make([]dto.MatchResponse, 0, len(items))}
	for _, m := range items {
		out.Items = append(out.Items, dto.MatchResponse{
			Rank:                 m.Rank,
			JobID:                m.JobID,
			JobTitle:             m.Title,
			SimilarityScore:      m.Score,
			SimilarityPercentage: m.Percentage,
		})
	}
	if len(items) > 0 {
		rankedAt := items[0].RankedAt
		out.CatalogVersion = items[0].CatalogVersion
		out.RankedAt = &rankedAt
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
