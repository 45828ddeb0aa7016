package repository

import (
	"context"
	"errors"

	"formhub/internal/cache"
	"formhub/internal/models"

	"gorm.io/gorm"
)

// FormRepository defines persistence operations for forms.
type FormRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Form, error)
	List(ctx context.Context) ([]models.Form, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Form, error)
	Create(ctx context.Context, form *models.Form) error
	Update(ctx context.Context, form *models.Form) error
	Delete(ctx context.Context, id uint) error
	ListUnanswered(ctx context.Context, userID uint) ([]models.Form, error)
}

type formRepository struct {
	db *gorm.DB
}

// NewFormRepository returns a new FormRepository implementation.
func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

// GetByID serves single-form reads through the cache; Update and Delete
// invalidate the key.
func (r *formRepository) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	var form models.Form
	err := cache.Aside(ctx, cache.FormKey(id), &form, cache.FormTTL, func() error {
		if err := r.db.WithContext(ctx).First(&form, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Form", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepository) List(ctx context.Context) ([]models.Form, error) {
	var forms []models.Form
	if err := r.db.WithContext(ctx).Order("id").Find(&forms).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return forms, nil
}

func (r *formRepository) ListByUser(ctx context.Context, userID uint) ([]models.Form, error) {
	var forms []models.Form
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&forms).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return forms, nil
}

func (r *formRepository) Create(ctx context.Context, form *models.Form) error {
	if err := r.db.WithContext(ctx).Create(form).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *formRepository) Update(ctx context.Context, form *models.Form) error {
	if err := r.db.WithContext(ctx).Save(form).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateForm(ctx, form.ID)
	return nil
}

func (r *formRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Form{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Form", id)
	}
	cache.InvalidateForm(ctx, id)
	cache.InvalidateLikeCount(ctx, id)
	return nil
}

// ListUnanswered returns the forms the user has not submitted any answer
// for: the set difference between all forms and the user's answered forms.
func (r *formRepository) ListUnanswered(ctx context.Context, userID uint) ([]models.Form, error) {
	var forms []models.Form
	answered := r.db.Model(&models.Answer{}).Select("form_id").Where("user_id = ?", userID)
	if err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", answered).
		Order("id").
		Find(&forms).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return forms, nil
}
