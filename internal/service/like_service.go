package service

import (
	"context"

	"formhub/internal/models"
	"formhub/internal/repository"
)

// LikeService handles idempotent form likes and like counts.
type LikeService struct {
	likes repository.LikeRepository
	forms repository.FormRepository
}

// NewLikeService constructs a LikeService.
func NewLikeService(likes repository.LikeRepository, forms repository.FormRepository) *LikeService {
	return &LikeService{likes: likes, forms: forms}
}

// Like records that the user liked the form and returns the new count.
// A repeated like from the same user is a conflict; the unique index on
// (user_id, form_id) enforces the same answer under concurrency.
func (s *LikeService) Like(ctx context.Context, formID, userID uint) (int64, error) {
	if _, err := s.forms.GetByID(ctx, formID); err != nil {
		return 0, err
	}

	exists, err := s.likes.Exists(ctx, userID, formID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, models.NewConflictError("You already liked this form.")
	}

	if err := s.likes.Create(ctx, &models.Like{UserID: userID, FormID: formID}); err != nil {
		return 0, err
	}

	return s.likes.CountByForm(ctx, formID)
}

// Count returns the number of likes on a form.
func (s *LikeService) Count(ctx context.Context, formID uint) (int64, error) {
	return s.likes.CountByForm(ctx, formID)
}
