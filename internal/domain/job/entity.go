package job

import (
	"time"

	"career-match/internal/domain/level"

	"github.com/google/uuid"
)

// Posting is a job entry of the matching catalog. Postings are immutable once
// loaded; the catalog is rebuilt on refresh.
type Posting struct {
	ID                uuid.UUID
	Title             string
	Company           string
	Description       string
	RequiredSkills    map[string]level.Level
	RequiredKnowledge map[string]level.Level
	Embedding         []float32
	CreatedAt         time.Time
}

// Requirements returns the requirement maps, never nil.
func (p Posting) Requirements() (skills, knowledge map[string]level.Level) {
	skills = p.RequiredSkills
	if skills == nil {
		skills = map[string]level.Level{}
	}
	knowledge = p.RequiredKnowledge
	if knowledge == nil {
		knowledge = map[string]level.Level{}
	}
	return skills, knowledge
}
