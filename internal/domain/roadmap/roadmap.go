package roadmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"career-match/internal/domain/gap"
)

var ErrMalformed = errors.New("malformed roadmap")

// Roadmap maps main learning topics to a target level name and lists the
// sub topics of each.
type Roadmap struct {
	Topics    map[string]string   `json:"topics"`
	SubTopics map[string][]string `json:"sub_topics"`
}

// TopicNames returns the topics in name order.
func (r Roadmap) TopicNames() []string {
	out := make([]string, 0, len(r.Topics))
	for t := range r.Topics {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Parse decodes generator output, tolerating markdown code fences around the
// JSON object.
func Parse(raw string) (Roadmap, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if i := strings.Index(s, "{"); i > 0 {
		s = s[i:]
	}
	if j := strings.LastIndex(s, "}"); j >= 0 && j < len(s)-1 {
		s = s[:j+1]
	}

	var r Roadmap
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return Roadmap{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(r.Topics) == 0 {
		return Roadmap{}, fmt.Errorf("%w: no topics", ErrMalformed)
	}
	if r.SubTopics == nil {
		r.SubTopics = map[string][]string{}
	}
	return r, nil
}

// Prompt builds the generation request from the gap subset of a report.
func Prompt(jobTitle string, gaps gap.Report) string {
	var b strings.Builder
	b.WriteString("Create a structured career roadmap for the role \"")
	b.WriteString(jobTitle)
	b.WriteString("\" based on this skill gap analysis.\n\n")
	writeEntries(&b, "Skills", gaps.Skills)
	writeEntries(&b, "Knowledge", gaps.Knowledge)
	b.WriteString(`
Analyse the gap between the current and required level of every item and
group them into main topics with sub topics.
Return ONLY a JSON object with this structure:
{"topics": {"Main Topic": "Basic|Intermediate|Advanced"}, "sub_topics": {"Main Topic": ["Sub topic"]}}
`)
	return b.String()
}

func writeEntries(b *strings.Builder, title string, entries []gap.Entry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString(":\n")
	for _, e := range entries {
		fmt.Fprintf(b, "- %s: status=%s current=%s required=%s\n", e.Name, e.Status, e.UserLevel, e.RequiredLevel)
	}
	b.WriteString("\n")
}
