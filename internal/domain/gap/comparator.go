package gap

import (
	"sort"
	"strings"

	"career-match/internal/domain/level"
)

// Holdings is the user side of a comparison.
type Holdings struct {
	Skills    map[string]level.Level
	Knowledge map[string]level.Level
}

// Requirements is the job side of a comparison.
type Requirements struct {
	Skills    map[string]level.Level
	Knowledge map[string]level.Level
}

type Entry struct {
	Name          string       `json:"name"`
	RequiredLevel level.Level  `json:"required_level"`
	UserLevel     level.Level  `json:"user_level"`
	Status        level.Status `json:"status"`
}

// Report is the per (user, job) classification, ordered by item name.
type Report struct {
	Skills    []Entry `json:"skills"`
	Knowledge []Entry `json:"knowledge"`
}

// Compare classifies every item the job requires against the user's
// holdings. Items held by the user but not required are ignored.
func Compare(user Holdings, job Requirements) Report {
	return Report{
		Skills:    compareItems(user.Skills, job.Skills),
		Knowledge: compareItems(user.Knowledge, job.Knowledge),
	}
}

func compareItems(held, required map[string]level.Level) []Entry {
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)

	lookup := newHeldLookup(held)
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		req := required[name]
		if req == level.NotProvided {
			req = level.Basic
		}
		usr := lookup.find(name)
		out = append(out, Entry{
			Name:          name,
			RequiredLevel: req,
			UserLevel:     usr,
			Status:        level.Classify(req, usr),
		})
	}
	return out
}

type heldLookup struct {
	exact  map[string]level.Level
	folded map[string]string
}

// newHeldLookup indexes held items for exact and case-insensitive lookup.
// When several keys fold to the same form the lexically smallest wins.
func newHeldLookup(held map[string]level.Level) heldLookup {
	folded := make(map[string]string, len(held))
	for k := range held {
		f := strings.ToLower(strings.TrimSpace(k))
		if cur, ok := folded[f]; !ok || k < cur {
			folded[f] = k
		}
	}
	return heldLookup{exact: held, folded: folded}
}

func (h heldLookup) find(name string) level.Level {
	if v, ok := h.exact[name]; ok {
		return v
	}
	if k, ok := h.folded[strings.ToLower(strings.TrimSpace(name))]; ok {
		return h.exact[k]
	}
	return level.NotProvided
}

// Gaps returns the subset of the report whose status is Missing or Weak.
func (r Report) Gaps() Report {
	return Report{
		Skills:    filterGaps(r.Skills),
		Knowledge: filterGaps(r.Knowledge),
	}
}

func filterGaps(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status.IsGap() {
			out = append(out, e)
		}
	}
	return out
}

// Counts tallies entries of both sections by status.
func (r Report) Counts() map[level.Status]int {
	out := map[level.Status]int{
		level.StatusAchieved: 0,
		level.StatusWeak:     0,
		level.StatusMissing:  0,
	}
	for _, e := range r.Skills {
		out[e.Status]++
	}
	for _, e := range r.Knowledge {
		out[e.Status]++
	}
	return out
}

func (r Report) IsEmpty() bool {
	return len(r.Skills) == 0 && len(r.Knowledge) == 0
}
