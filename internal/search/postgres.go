package search

import (
	"context"
	"time"

	"formhub/internal/models"
	"formhub/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type postgresSearcher struct {
	db *gorm.DB
}

// NewPostgresSearcher returns a Searcher backed by pg_trgm. The database
// must have the pg_trgm extension installed (done at connect time).
func NewPostgresSearcher(db *gorm.DB) Searcher {
	return &postgresSearcher{db: db}
}

type searchRow struct {
	ID          uint
	UserID      uint
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Sim         float64
}

const searchQuery = `
SELECT forms.id, forms.user_id, forms.title, forms.description, forms.status,
       forms.created_at, forms.updated_at,
       similarity(forms.title, ?) AS sim
FROM forms
WHERE forms.title ILIKE ?
   OR forms.description ILIKE ?
   OR similarity(forms.title, ?) > ?
ORDER BY sim DESC, forms.id`

func (s *postgresSearcher) Search(ctx context.Context, query string) ([]Result, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "Search", "forms")
	defer span.End()
	span.SetAttributes(attribute.Int("search.query_length", len(query)))

	var rows []searchRow
	like := "%" + query + "%"
	err := s.db.WithContext(ctx).
		Raw(searchQuery, query, like, like, query, SimilarityThreshold).
		Scan(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, models.NewInternalError(err)
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, Result{
			Form: models.Form{
				ID:          row.ID,
				UserID:      row.UserID,
				Title:       row.Title,
				Description: row.Description,
				Status:      row.Status,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			Similarity: row.Sim,
		})
	}
	return dedupe(results), nil
}
