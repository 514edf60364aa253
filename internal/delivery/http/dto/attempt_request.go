package dto

import "github.com/google/uuid"

type AnswerRequest struct {
	QuestionID     uuid.UUID `json:"question_id"`
	SelectedOption string    `json:"selected_option"`
}

type SubmitAnswersRequest struct {
	Answers []AnswerRequest `json:"answers"`
}

type SubmitAnswersResponse struct {
	Attempt int `json:"attempt_number"`
	Stored  int `json:"stored"`
}

type LatestAttemptResponse struct {
	Attempt int `json:"attempt_number"`
}

type ScoreResponse struct {
	Attempt    int     `json:"attempt_number"`
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type QuestionRequest struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
}

// QuestionsRequest carries a supplied question set. An empty body asks for
// a generated one.
type QuestionsRequest struct {
	Questions []QuestionRequest `json:"questions"`
}

// QuestionResponse leaves out the answer.
type QuestionResponse struct {
	ID         uuid.UUID `json:"id"`
	Question   string    `json:"question"`
	Options    []string  `json:"options"`
	Difficulty string    `json:"difficulty"`
	Category   string    `json:"category"`
}

type QuestionsResponse struct {
	Attempt   int                `json:"attempt_number"`
	Questions []QuestionResponse `json:"questions"`
}
