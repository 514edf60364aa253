package level

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Level is an ordinal proficiency tier. Values outside the named range are
// kept as-is so legacy numeric encodings still compare correctly.
type Level int

const (
	NotProvided  Level = 0
	Basic        Level = 1
	Intermediate Level = 2
	Advanced     Level = 3
)

var names = map[Level]string{
	NotProvided:  "Not Provided",
	Basic:        "Basic",
	Intermediate: "Intermediate",
	Advanced:     "Advanced",
}

var byName = map[string]Level{
	"Not Provided": NotProvided,
	"Basic":        Basic,
	"Intermediate": Intermediate,
	"Advanced":     Advanced,
}

// All returns the named tiers in ascending order.
func All() []Level {
	return []Level{NotProvided, Basic, Intermediate, Advanced}
}

func (l Level) String() string {
	if n, ok := names[l]; ok {
		return n
	}
	return strconv.Itoa(int(l))
}

// Normalize converts a stored level value into a Level. Strings are matched
// against the tier names, numbers are treated as ordinals already, anything
// else is NotProvided.
func Normalize(v any) Level {
	switch t := v.(type) {
	case nil:
		return NotProvided
	case Level:
		return t
	case string:
		if l, ok := byName[strings.TrimSpace(t)]; ok {
			return l
		}
		return NotProvided
	case int:
		return Level(t)
	case int8:
		return Level(t)
	case int16:
		return Level(t)
	case int32:
		return Level(t)
	case int64:
		return Level(t)
	case uint:
		return Level(t)
	case uint8:
		return Level(t)
	case uint16:
		return Level(t)
	case uint32:
		return Level(t)
	case uint64:
		return Level(t)
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Level(i)
		}
		if f, err := t.Float64(); err == nil {
			return fromFloat(f)
		}
		return NotProvided
	default:
		return NotProvided
	}
}

func fromFloat(f float64) Level {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NotProvided
	}
	return Level(math.Round(f))
}

// NormalizeMap applies Normalize to every value of a raw map.
func NormalizeMap(raw map[string]any) map[string]Level {
	out := make(map[string]Level, len(raw))
	for k, v := range raw {
		out[k] = Normalize(v)
	}
	return out
}

func (l Level) MarshalJSON() ([]byte, error) {
	if n, ok := names[l]; ok {
		return json.Marshal(n)
	}
	return json.Marshal(int(l))
}

func (l *Level) UnmarshalJSON(b []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*l = Normalize(raw)
	return nil
}

// Status is the outcome of comparing a user's level against a requirement.
type Status string

const (
	StatusMissing  Status = "Missing"
	StatusWeak     Status = "Weak"
	StatusAchieved Status = "Achieved"
)

// IsGap reports whether the status needs follow-up learning.
func (s Status) IsGap() bool {
	return s == StatusMissing || s == StatusWeak
}

// Classify compares a user level against a required level.
func Classify(required, user Level) Status {
	if user == NotProvided {
		return StatusMissing
	}
	if user >= required {
		return StatusAchieved
	}
	return StatusWeak
}
