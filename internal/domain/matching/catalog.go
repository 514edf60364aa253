package matching

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"career-match/internal/domain/job"
)

var (
	ErrEmptyCatalog      = errors.New("no jobs or embeddings available")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrSpaceMismatch     = errors.New("embedding space mismatch")
	ErrNonFiniteVector   = errors.New("embedding has a non-finite component")
)

// DimensionMismatchError reports a vector whose length disagrees with the
// catalog dimensionality.
type DimensionMismatchError struct {
	Want  int
	Got   int
	JobID string
}

func (e *DimensionMismatchError) Error() string {
	if e.JobID != "" {
		return fmt.Sprintf("%s: job %s has %d dimensions, catalog has %d", ErrDimensionMismatch, e.JobID, e.Got, e.Want)
	}
	return fmt.Sprintf("%s: query has %d dimensions, catalog has %d", ErrDimensionMismatch, e.Got, e.Want)
}

func (e *DimensionMismatchError) Unwrap() error {
	return ErrDimensionMismatch
}

// NonFiniteVectorError reports a NaN or infinite component. JobID is empty
// for the query vector.
type NonFiniteVectorError struct {
	JobID string
	Index int
}

func (e *NonFiniteVectorError) Error() string {
	if e.JobID != "" {
		return fmt.Sprintf("%s: job %s at index %d", ErrNonFiniteVector, e.JobID, e.Index)
	}
	return fmt.Sprintf("%s: query at index %d", ErrNonFiniteVector, e.Index)
}

func (e *NonFiniteVectorError) Unwrap() error {
	return ErrNonFiniteVector
}

func firstNonFinite(v []float32) int {
	for i, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return i
		}
	}
	return -1
}

// Catalog is an immutable snapshot of the job postings a ranking call runs
// against, bound to the embedding space its vectors were produced in.
type Catalog struct {
	space    string
	version  string
	postings []job.Posting
	norms    []float64
	dim      int
}

// NewCatalog validates the postings and precomputes vector norms. Postings
// without an embedding are skipped; an empty result is still a valid catalog
// and fails at ranking time with ErrEmptyCatalog.
func NewCatalog(space, version string, postings []job.Posting) (*Catalog, error) {
	c := &Catalog{space: space, version: version}

	kept := make([]job.Posting, 0, len(postings))
	for _, p := range postings {
		if len(p.Embedding) == 0 {
			continue
		}
		if c.dim == 0 {
			c.dim = len(p.Embedding)
		}
		if len(p.Embedding) != c.dim {
			return nil, &DimensionMismatchError{Want: c.dim, Got: len(p.Embedding), JobID: p.ID.String()}
		}
		if i := firstNonFinite(p.Embedding); i >= 0 {
			return nil, &NonFiniteVectorError{JobID: p.ID.String(), Index: i}
		}
		kept = append(kept, p)
	}

	c.postings = kept
	c.norms = make([]float64, len(kept))
	for i, p := range kept {
		c.norms[i] = norm(p.Embedding)
	}
	return c, nil
}

func (c *Catalog) Space() string {
	if c == nil {
		return ""
	}
	return c.space
}

func (c *Catalog) Version() string {
	if c == nil {
		return ""
	}
	return c.version
}

func (c *Catalog) Dimension() int {
	if c == nil {
		return 0
	}
	return c.dim
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.postings)
}

// Posting returns the posting at catalog index i.
func (c *Catalog) Posting(i int) (job.Posting, bool) {
	if c == nil || i < 0 || i >= len(c.postings) {
		return job.Posting{}, false
	}
	return c.postings[i], true
}

// CatalogHolder publishes the current catalog. Refreshes replace the whole
// reference so a ranking call never sees a partially updated catalog.
type CatalogHolder struct {
	current atomic.Pointer[Catalog]
}

func NewCatalogHolder(initial *Catalog) *CatalogHolder {
	h := &CatalogHolder{}
	if initial != nil {
		h.current.Store(initial)
	}
	return h
}

func (h *CatalogHolder) Load() *Catalog {
	if h == nil {
		return nil
	}
	return h.current.Load()
}

// Swap installs next and returns the catalog it replaced.
func (h *CatalogHolder) Swap(next *Catalog) *Catalog {
	if h == nil {
		return nil
	}
	return h.current.Swap(next)
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		f := float64(x)
		sum += f * f
	}
	return math.Sqrt(sum)
}
