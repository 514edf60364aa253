package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const DefaultTopK = 3

type MatchResult struct {
	JobID        uuid.UUID
	Title        string
	CatalogIndex int
	Score        float64
	Percentage   float64
}

// Rank scores every catalog posting against query by cosine similarity and
// returns at most topK results with distinct titles, best first. Equal scores
// keep catalog order.
func Rank(cat *Catalog, query []float32, topK int) ([]MatchResult, error) {
	if cat == nil || cat.Len() == 0 || cat.Dimension() == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(query) != cat.Dimension() {
		return nil, &DimensionMismatchError{Want: cat.Dimension(), Got: len(query)}
	}
	if i := firstNonFinite(query); i >= 0 {
		return nil, &NonFiniteVectorError{Index: i}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	scores := Similarities(cat, query)

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	seen := make(map[string]struct{}, topK)
	out := make([]MatchResult, 0, topK)
	for _, idx := range order {
		if len(out) >= topK {
			break
		}
		p := cat.postings[idx]
		title := strings.TrimSpace(p.Title)
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}

		out = append(out, MatchResult{
			JobID:        p.ID,
			Title:        p.Title,
			CatalogIndex: idx,
			Score:        scores[idx],
			Percentage:   Percentage(scores[idx]),
		})
	}
	return out, nil
}

// Similarities returns the cosine similarity of query against each catalog
// posting, in catalog order. A zero vector on either side scores 0. The
// caller guarantees len(query) == cat.Dimension().
func Similarities(cat *Catalog, query []float32) []float64 {
	qn := norm(query)
	out := make([]float64, len(cat.postings))
	if qn == 0 {
		return out
	}
	for i, p := range cat.postings {
		if cat.norms[i] == 0 {
			continue
		}
		var dot float64
		for k, x := range p.Embedding {
			dot += float64(x) * float64(query[k])
		}
		out[i] = dot / (qn * cat.norms[i])
	}
	return out
}

// Percentage converts a similarity into a percentage rounded to two
// decimals. Negative similarities stay negative.
func Percentage(score float64) float64 {
	return round2(score * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
