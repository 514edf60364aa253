package handler

import (
	"bytes"
	"fmt"

	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	uc usecase.ReportUsecase
}

func NewReportHandler(uc usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/report")
	grp.Get("/:job_id", h.Get)
	grp.Get("/:job_id/export", h.Export)
}

func (h *ReportHandler) Get(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}

	data, err := h.uc.Get(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *ReportHandler) Export(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.uc.Export(c.Context(), userID, jobID, &buf); err != nil {
		return mapUsecaseError(err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="career-report-%s.xlsx"`, jobID))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
