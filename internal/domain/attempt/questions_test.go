package attempt

import (
	"errors"
	"strings"
	"testing"
)

func TestQuestionValidate(t *testing.T) {
	opts := []string{"A. one", "B. two", "C. three"}
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{name: "valid", q: Question{Text: "Q?", Options: opts, Answer: "C"}},
		{name: "answer with text", q: Question{Text: "Q?", Options: opts, Answer: "b. two"}},
		{name: "empty text", q: Question{Text: " ", Options: opts, Answer: "A"}, wantErr: true},
		{name: "one option", q: Question{Text: "Q?", Options: opts[:1], Answer: "A"}, wantErr: true},
		{name: "answer out of range", q: Question{Text: "Q?", Options: opts, Answer: "D"}, wantErr: true},
		{name: "no answer", q: Question{Text: "Q?", Options: opts, Answer: "?"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuestion) {
					t.Fatalf("expected ErrInvalidQuestion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		})
	}
}

func TestParseQuestions(t *testing.T) {
	valid := `{"question":"What is 1+1?","options":["A. 1","B. 2"],"answer":"b"}`
	invalid := `{"question":"","options":["A. x"],"answer":"A"}`

	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{name: "array", raw: "[" + valid + "]", want: 1},
		{name: "envelope", raw: `{"questions":[` + valid + "," + valid + `]}`, want: 2},
		{name: "fenced with prose", raw: "Sure:\n```json\n[" + valid + "]\n```", want: 1},
		{name: "drops invalid", raw: "[" + valid + "," + invalid + "]", want: 1},
		{name: "only invalid", raw: "[" + invalid + "]", wantErr: true},
		{name: "garbage", raw: "no questions today", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := ParseQuestions(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedQuestions) {
					t.Fatalf("expected ErrMalformedQuestions, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(qs) != tt.want {
				t.Fatalf("expected %d questions, got %d", tt.want, len(qs))
			}
			if qs[0].Answer != "B" || qs[0].Difficulty != "Easy" || qs[0].Category != "General" {
				t.Fatalf("expected normalized question, got %#v", qs[0])
			}
		})
	}
}

func TestQuestionPrompt(t *testing.T) {
	p := QuestionPrompt("  I build Go services with Postgres.  ", 0)
	if !strings.Contains(p, "I build Go services with Postgres.") {
		t.Fatalf("profile text missing:\n%s", p)
	}
	if !strings.Contains(p, "write 10 multiple choice questions") {
		t.Fatalf("expected default count:\n%s", p)
	}
}
