package attempt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultQuestionCount is the size of a generated question set.
const DefaultQuestionCount = 10

var (
	ErrInvalidQuestion    = errors.New("invalid question")
	ErrMalformedQuestions = errors.New("malformed question set")
)

// Validate reports whether a question can be scored: it needs text, at
// least two options and an answer letter that names one of them.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: needs at least two options", ErrInvalidQuestion)
	}
	letter := OptionLetter(q.Answer)
	if letter == "" || int(letter[0]-'A') >= len(q.Options) {
		return fmt.Errorf("%w: answer %q does not name an option", ErrInvalidQuestion, q.Answer)
	}
	return nil
}

// Normalize trims the fields and fills the difficulty and category
// defaults.
func (q Question) Normalize() Question {
	q.Text = strings.TrimSpace(q.Text)
	q.Answer = OptionLetter(q.Answer)
	opts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	q.Options = opts
	if q.Difficulty = strings.TrimSpace(q.Difficulty); q.Difficulty == "" {
		q.Difficulty = "Easy"
	}
	if q.Category = strings.TrimSpace(q.Category); q.Category == "" {
		q.Category = "General"
	}
	return q
}

type wireQuestion struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
}

// ParseQuestions decodes generator output into questions. The JSON may be a
// bare array or an object with a "questions" array, optionally wrapped in
// markdown fences. Entries that cannot be scored are dropped.
func ParseQuestions(raw string) ([]Question, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return nil, fmt.Errorf("%w: no json found", ErrMalformedQuestions)
	}
	s = s[start:]

	var wire []wireQuestion
	if s[0] == '[' {
		if end := strings.LastIndex(s, "]"); end >= 0 {
			s = s[:end+1]
		}
		if err := json.Unmarshal([]byte(s), &wire); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedQuestions, err)
		}
	} else {
		if end := strings.LastIndex(s, "}"); end >= 0 {
			s = s[:end+1]
		}
		var env struct {
			Questions []wireQuestion `json:"questions"`
		}
		if err := json.Unmarshal([]byte(s), &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedQuestions, err)
		}
		wire = env.Questions
	}

	out := make([]Question, 0, len(wire))
	for _, w := range wire {
		q := Question{
			Text:       w.Question,
			Options:    w.Options,
			Answer:     w.Answer,
			Difficulty: w.Difficulty,
			Category:   w.Category,
		}.Normalize()
		if q.Validate() != nil {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no usable questions", ErrMalformedQuestions)
	}
	return out, nil
}

// QuestionPrompt asks for a multiple choice set probing the skills and
// knowledge a profile text claims.
func QuestionPrompt(profileText string, count int) string {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	var b strings.Builder
	b.WriteString("You generate assessment questions for computer science topics.\n\n")
	b.WriteString("Profile of the candidate:\n")
	b.WriteString(strings.TrimSpace(profileText))
	fmt.Fprintf(&b, `

Extract the coding topics, languages, libraries and concepts from the profile
and write %d multiple choice questions covering them. Mix coding questions
with short self-contained snippets (at most 30 lines) and conceptual ones.
Every question has exactly 4 options labelled "A. ", "B. ", "C. ", "D. " and
one correct option.
Return ONLY a JSON array with this structure:
[{"question": "...", "options": ["A. ...", "B. ...", "C. ...", "D. ..."], "answer": "A", "difficulty": "Easy|Medium|Hard", "category": "Coding|Non-coding"}]
`, count)
	return b.String()
}
