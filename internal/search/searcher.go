package search

import (
	"context"

	"formhub/internal/models"
)

// Result pairs a matched form with its title similarity to the query.
type Result struct {
	Form       models.Form
	Similarity float64
}

// Searcher finds forms whose title or description matches a query, either
// by substring or by trigram similarity above SimilarityThreshold. Results
// come back deduplicated by form ID, best match first.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// dedupe keeps the first occurrence per form ID. Input is ordered best
// match first, so the kept row is the highest-ranked one.
func dedupe(results []Result) []Result {
	seen := make(map[uint]struct{}, len(results))
	out := results[:0]
	for _, r := range results {
		if _, ok := seen[r.Form.ID]; ok {
			continue
		}
		seen[r.Form.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
