package handler

import (
	"career-match/internal/delivery/http/dto"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/catalog")
	grp.Get("", h.Current)
	grp.Post("/refresh", h.Refresh)
}

func (h *CatalogHandler) Refresh(c fiber.Ctx) error {
	info, err := h.uc.Refresh(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "catalog refreshed", toCatalogResponse(info))
}

func (h *CatalogHandler) Current(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, toCatalogResponse(h.uc.Current()))
}

func toCatalogResponse(info usecase.CatalogInfo) dto.CatalogResponse {
	return dto.CatalogResponse{
		Version:        info.Version,
		EmbeddingSpace: info.Space,
		Size:           info.Size,
		Dimension:      info.Dimension,
	}
}
