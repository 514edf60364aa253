package handler

import (
	"errors"

	"career-match/internal/delivery/http/dto"
	"career-match/internal/domain/gap"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type GapHandler struct {
	gaps     usecase.GapAnalysisUsecase
	roadmaps usecase.RoadmapUsecase
}

func NewGapHandler(gaps usecase.GapAnalysisUsecase, roadmaps usecase.RoadmapUsecase) *GapHandler {
	return &GapHandler{gaps: gaps, roadmaps: roadmaps}
}

func (h *GapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/gaps")
	grp.Post("", h.Compute)
	grp.Get("", h.Overview)
	grp.Get("/:job_id/roadmap-input", h.RoadmapInput)
	grp.Post("/:job_id/roadmap", h.Roadmap)
}

// Compute answers 207 when only some jobs could be analysed; the body then
// lists both the stored reports and the failures.
func (h *GapHandler) Compute(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	res, err := h.gaps.Compute(c.Context(), userID)
	status := fiber.StatusOK
	msg := response.MessageOK
	if err != nil {
		if !errors.Is(err, gap.ErrPartialAggregation) {
			return mapUsecaseError(err)
		}
		status = fiber.StatusMultiStatus
		msg = response.MessagePartialSuccess
	}

	out := dto.GapComputeResponse{
		Attempt:  res.Attempt,
		Reports:  make([]dto.GapReportResponse, 0, len(res.Reports)),
		Failures: make([]dto.GapFailureResponse, 0, len(res.Failures)),
	}
	for _, r := range res.Reports {
		out.Reports = append(out.Reports, dto.GapReportResponse{
			JobID:       r.JobID,
			JobTitle:    r.Title,
			Attempt:     res.Attempt,
			GapAnalysis: r.Report,
		})
	}
	for _, f := range res.Failures {
		reason := "requirements unavailable"
		if !errors.Is(f.Err, gap.ErrMissingEntity) {
			reason = "analysis failed"
		}
		out.Failures = append(out.Failures, dto.GapFailureResponse{JobID: f.JobID, JobTitle: f.Title, Reason: reason})
	}
	return response.Success(c, status, msg, out)
}

func (h *GapHandler) Overview(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}

	ov, err := h.gaps.Overview(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.GapOverviewResponse{State: string(ov.State), Reports: make([]dto.GapReportResponse, 0, len(ov.Reports))}
	for _, r := range ov.Reports {
		computed := r.ComputedAt
		out.Reports = append(out.Reports, dto.GapReportResponse{
			JobID:       r.Job.JobID,
			JobTitle:    r.Job.Title,
			Attempt:     r.Attempt,
			GapAnalysis: r.Job.Report,
			ComputedAt:  &computed,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *GapHandler) RoadmapInput(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}

	in, err := h.gaps.RoadmapInput(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.GapReportResponse{
		JobID:       in.JobID,
		JobTitle:    in.Title,
		GapAnalysis: in.Report,
	})
}

func (h *GapHandler) Roadmap(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}

	r, err := h.roadmaps.Generate(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, r)
}
