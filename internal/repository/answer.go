package repository

import (
	"context"

	"formhub/internal/models"

	"gorm.io/gorm"
)

// AnswerRepository defines persistence operations for answers.
type AnswerRepository interface {
	ListByForm(ctx context.Context, formID uint) ([]models.Answer, error)
	Create(ctx context.Context, answer *models.Answer) error
	ListAll(ctx context.Context) ([]models.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository returns a new AnswerRepository implementation.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) ListByForm(ctx context.Context, formID uint) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.WithContext(ctx).Where("form_id = ?", formID).Order("id").Find(&answers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return answers, nil
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	if err := r.db.WithContext(ctx).Create(answer).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListAll returns every answer in insertion order. The latest-response
// aggregate walks this to pick the first row per (form, user) pair.
func (r *answerRepository) ListAll(ctx context.Context) ([]models.Answer, error) {
	var answers []models.Answer
	if err := r.db.WithContext(ctx).Order("id").Find(&answers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return answers, nil
}
