package repository

import (
	"context"

	"formhub/internal/cache"
	"formhub/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for form likes.
type LikeRepository interface {
	Exists(ctx context.Context, userID, formID uint) (bool, error)
	Create(ctx context.Context, like *models.Like) error
	CountByForm(ctx context.Context, formID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID, formID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND form_id = ?", userID, formID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts the like. The unique (user_id, form_id) index closes the
// race between two concurrent likes from the same user; the duplicate path
// surfaces as a conflict either way.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You already liked this form.")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateLikeCount(ctx, like.FormID)
	return nil
}

func (r *likeRepository) CountByForm(ctx context.Context, formID uint) (int64, error) {
	var count int64
	key := cache.LikeCountKey(formID)

	err := cache.Aside(ctx, key, &count, cache.LikeCountTTL, func() error {
		if err := r.db.WithContext(ctx).Model(&models.Like{}).
			Where("form_id = ?", formID).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
