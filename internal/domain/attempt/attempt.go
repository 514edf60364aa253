package attempt

import (
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// FirstAttempt is the attempt number used before any answer is recorded.
const FirstAttempt = 1

type Question struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Attempt    int
	Text       string
	Options    []string
	Answer     string
	Difficulty string
	Category   string
}

type Answer struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	QuestionID     uuid.UUID
	Attempt        int
	SelectedOption string
}

type Result struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

func (r Result) Incorrect() int {
	return r.Total - r.Correct
}

// LatestAttempt returns the highest attempt number among a user's answers.
func LatestAttempt(answers []Answer) int {
	latest := 0
	for _, a := range answers {
		if a.Attempt > latest {
			latest = a.Attempt
		}
	}
	if latest < FirstAttempt {
		return FirstAttempt
	}
	return latest
}

// Score counts the questions whose answer matches the stored option letter.
// Unanswered questions count toward the total as incorrect.
func Score(questions []Question, answers []Answer) Result {
	selected := make(map[uuid.UUID]string, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.SelectedOption
	}

	res := Result{Total: len(questions)}
	for _, q := range questions {
		got, ok := selected[q.ID]
		if !ok {
			continue
		}
		want := OptionLetter(q.Answer)
		if want == "" {
			continue
		}
		if OptionLetter(got) == want {
			res.Correct++
		}
	}

	if res.Total > 0 {
		res.Percentage = math.Round(float64(res.Correct)/float64(res.Total)*100*100) / 100
	}
	return res
}

// OptionLetter reduces "b", "B", or "B. Some text" to "B".
func OptionLetter(s string) string {
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return ""
}
