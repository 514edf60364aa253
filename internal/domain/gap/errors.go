package gap

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrMissingEntity      = errors.New("entity not resolvable")
	ErrPartialAggregation = errors.New("gap aggregation partially failed")
)

const (
	EntityUser         = "user"
	EntityJob          = "job"
	EntityRequirements = "job requirements"
)

// MissingEntityError reports a user or job that could not be resolved for a
// comparison.
type MissingEntityError struct {
	Kind string
	ID   string
}

func (e *MissingEntityError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrMissingEntity, e.Kind, e.ID)
}

func (e *MissingEntityError) Unwrap() error {
	return ErrMissingEntity
}

func NewMissingEntityError(kind string, id uuid.UUID) *MissingEntityError {
	return &MissingEntityError{Kind: kind, ID: id.String()}
}

// PartialAggregationError lists which jobs of a batch produced a report and
// which did not.
type PartialAggregationError struct {
	Succeeded []uuid.UUID
	Failed    []uuid.UUID
}

func (e *PartialAggregationError) Error() string {
	total := len(e.Succeeded) + len(e.Failed)
	return fmt.Sprintf("%s: %d of %d jobs failed", ErrPartialAggregation, len(e.Failed), total)
}

func (e *PartialAggregationError) Unwrap() error {
	return ErrPartialAggregation
}
