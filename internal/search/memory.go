package search

import (
	"context"
	"sort"

	"formhub/internal/models"

	"gorm.io/gorm"
)

type memorySearcher struct {
	db *gorm.DB
}

// NewMemorySearcher returns a Searcher that loads forms and ranks them in
// process with the Go trigram implementation. It exists for stores without
// pg_trgm (SEARCH_BACKEND=memory) and ranks identically to the Postgres
// backend.
func NewMemorySearcher(db *gorm.DB) Searcher {
	return &memorySearcher{db: db}
}

func (s *memorySearcher) Search(ctx context.Context, query string) ([]Result, error) {
	var forms []models.Form
	if err := s.db.WithContext(ctx).Order("id").Find(&forms).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	results := make([]Result, 0)
	for _, form := range forms {
		sim := Similarity(form.Title, query)
		if containsFold(form.Title, query) ||
			containsFold(form.Description, query) ||
			sim > SimilarityThreshold {
			results = append(results, Result{Form: form, Similarity: sim})
		}
	}

	// stable keeps the id order for equal similarities
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return dedupe(results), nil
}
