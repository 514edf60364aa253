package handler

import (
	"career-match/internal/delivery/http/dto"
	"career-match/internal/delivery/http/middleware"
	"career-match/internal/domain/attempt"
	"career-match/internal/pkg/response"
	"career-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AttemptHandler struct {
	uc usecase.AttemptUsecase
}

func NewAttemptHandler(uc usecase.AttemptUsecase) *AttemptHandler {
	return &AttemptHandler{uc: uc}
}

func (h *AttemptHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/attempts")
	grp.Get("/latest", h.Latest)
	grp.Get("/:attempt/questions", h.Questions)
	grp.Post("/:attempt/questions", h.CreateQuestions)
	grp.Post("/:attempt/answers", h.SubmitAnswers)
	grp.Get("/:attempt/score", h.Score)
}

func (h *AttemptHandler) Questions(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	attemptNo, err := parseAttemptParam(c)
	if err != nil {
		return err
	}
	qs, err := h.uc.Questions(c.Context(), userID, attemptNo)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toQuestionsResponse(attemptNo, qs))
}

// CreateQuestions stores the supplied set, or generates one from the
// profile text when the body is empty.
func (h *AttemptHandler) CreateQuestions(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	attemptNo, err := parseAttemptParam(c)
	if err != nil {
		return err
	}

	var req dto.QuestionsRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	var qs []attempt.Question
	if len(req.Questions) == 0 {
		qs, err = h.uc.GenerateQuestions(c.Context(), userID, attemptNo)
	} else {
		in := make([]attempt.Question, 0, len(req.Questions))
		for _, q := range req.Questions {
			in = append(in, attempt.Question{
				Text:       q.Question,
				Options:    q.Options,
				Answer:     q.Answer,
				Difficulty: q.Difficulty,
				Category:   q.Category,
			})
		}
		qs, err = h.uc.SaveQuestions(c.Context(), userID, attemptNo, in)
	}
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "questions stored", toQuestionsResponse(attemptNo, qs))
}

func toQuestionsResponse(attemptNo int, qs []attempt.Question) dto.QuestionsResponse {
	out := dto.QuestionsResponse{Attempt: attemptNo, Questions: make([]dto.QuestionResponse, 0, len(qs))}
	for _, q := range qs {
		out.Questions = append(out.Questions, dto.QuestionResponse{
			ID:         q.ID,
			Question:   q.Text,
			Options:    q.Options,
			Difficulty: q.Difficulty,
			Category:   q.Category,
		})
	}
	return out
}

func (h *AttemptHandler) SubmitAnswers(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	attemptNo, err := parseAttemptParam(c)
	if err != nil {
		return err
	}

	var req dto.SubmitAnswersRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := make([]usecase.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		in = append(in, usecase.AnswerInput{QuestionID: a.QuestionID, SelectedOption: a.SelectedOption})
	}

	n, err := h.uc.SubmitAnswers(c.Context(), userID, attemptNo, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "answers stored", dto.SubmitAnswersResponse{Attempt: attemptNo, Stored: n})
}

func (h *AttemptHandler) Latest(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	n, err := h.uc.Latest(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.LatestAttemptResponse{Attempt: n})
}

func (h *AttemptHandler) Score(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if err != nil {
		return err
	}
	attemptNo, err := parseAttemptParam(c)
	if err != nil {
		return err
	}

	res, err := h.uc.Score(c.Context(), userID, attemptNo)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ScoreResponse{
		Attempt:    attemptNo,
		Correct:    res.Correct,
		Incorrect:  res.Incorrect(),
		Total:      res.Total,
		Percentage: res.Percentage,
	})
}
