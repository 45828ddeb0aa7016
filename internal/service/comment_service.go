package service

import (
	"context"
	"time"

	"formhub/internal/models"
	"formhub/internal/repository"
)

// CommentService handles comments left on forms.
type CommentService struct {
	comments repository.CommentRepository
	forms    repository.FormRepository
	users    repository.UserRepository
}

// NewCommentService constructs a CommentService.
func NewCommentService(comments repository.CommentRepository, forms repository.FormRepository, users repository.UserRepository) *CommentService {
	return &CommentService{comments: comments, forms: forms, users: users}
}

// CommentView is the wire shape of a comment enriched with the author name.
type CommentView struct {
	ID        uint      `json:"id"`
	FormID    uint      `json:"form_id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *CommentService) view(ctx context.Context, comment *models.Comment) CommentView {
	name := ""
	if user, err := s.users.GetByID(ctx, comment.UserID); err == nil {
		name = user.Name
	}
	return CommentView{
		ID:        comment.ID,
		FormID:    comment.FormID,
		Name:      name,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// Create stores a comment on an existing form.
func (s *CommentService) Create(ctx context.Context, formID, userID uint, text string) (*CommentView, error) {
	if _, err := s.forms.GetByID(ctx, formID); err != nil {
		return nil, err
	}

	comment := &models.Comment{FormID: formID, UserID: userID, Comment: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	view := s.view(ctx, comment)
	return &view, nil
}

// List returns a form's comments with author names.
func (s *CommentService) List(ctx context.Context, formID uint) ([]CommentView, error) {
	comments, err := s.comments.ListByForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, s.view(ctx, &comments[i]))
	}
	return views, nil
}

// Delete removes a comment by ID.
func (s *CommentService) Delete(ctx context.Context, commentID uint) error {
	return s.comments.Delete(ctx, commentID)
}
