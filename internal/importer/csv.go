package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"career-match/internal/domain/job"
	"career-match/internal/domain/level"

	"github.com/google/uuid"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidRow    = errors.New("invalid row")
)

// postingNamespace seeds ids for rows without an explicit id, so importing
// the same file twice updates instead of duplicating.
var postingNamespace = uuid.MustParse("5b0e4a5e-1f1c-4c1e-9a57-0e2f62b4f3a1")

var requiredColumns = []string{"title", "description"}

// ParseCSV reads postings from a header-led CSV file. Recognised columns are
// id, title, company, description, required_skills and required_knowledge;
// the requirement columns hold JSON objects of name to level.
func ParseCSV(r io.Reader) ([]job.Posting, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []job.Posting
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		p := job.Posting{
			Title:       field(rec, "title"),
			Company:     field(rec, "company"),
			Description: field(rec, "description"),
		}
		if p.Title == "" {
			return nil, fmt.Errorf("%w: line %d: empty title", ErrInvalidRow, line)
		}

		if raw := field(rec, "id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: id: %v", ErrInvalidRow, line, err)
			}
			p.ID = id
		} else {
			p.ID = uuid.NewSHA1(postingNamespace, []byte(p.Title+"\x00"+p.Company))
		}

		if p.RequiredSkills, err = parseLevels(field(rec, "required_skills")); err != nil {
			return nil, fmt.Errorf("%w: line %d: required_skills: %v", ErrInvalidRow, line, err)
		}
		if p.RequiredKnowledge, err = parseLevels(field(rec, "required_knowledge")); err != nil {
			return nil, fmt.Errorf("%w: line %d: required_knowledge: %v", ErrInvalidRow, line, err)
		}

		out = append(out, p)
	}
	return out, nil
}

func parseLevels(raw string) (map[string]level.Level, error) {
	if raw == "" {
		return map[string]level.Level{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	out := level.NormalizeMap(m)
	for name := range out {
		if strings.TrimSpace(name) == "" {
			delete(out, name)
		}
	}
	return out, nil
}
