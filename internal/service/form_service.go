package service

import (
	"context"
	"strings"
	"time"

	"formhub/internal/models"
	"formhub/internal/observability"
	"formhub/internal/repository"
	"formhub/internal/search"
)

// FormView is the wire shape of a form enriched with its owner's name.
type FormView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchResultView additionally exposes the owner ID, matching the search
// endpoint's historical response shape.
type SearchResultView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
}

// FormService handles form CRUD, the unanswered-forms difference and search.
type FormService struct {
	forms    repository.FormRepository
	users    repository.UserRepository
	searcher search.Searcher
}

// NewFormService constructs a FormService.
func NewFormService(forms repository.FormRepository, users repository.UserRepository, searcher search.Searcher) *FormService {
	return &FormService{forms: forms, users: users, searcher: searcher}
}

// CreateFormInput is the payload for creating a form.
type CreateFormInput struct {
	UserID      uint
	Title       string
	Description string
}

// UpdateFormInput is the payload for replacing a form's mutable fields.
type UpdateFormInput struct {
	ID          uint
	Title       string
	Description string
	Status      string
}

func (s *FormService) view(form *models.Form, ownerName string) FormView {
	return FormView{
		ID:          form.ID,
		Name:        ownerName,
		Title:       form.Title,
		Description: form.Description,
		Status:      form.Status,
		CreatedAt:   form.CreatedAt,
		UpdatedAt:   form.UpdatedAt,
	}
}

// ownerName resolves a form owner's display name. A dangling owner reference
// is reported with the endpoint's historical message.
func (s *FormService) ownerName(ctx context.Context, userID uint) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if models.IsNotFound(err) {
			return "", models.NewNotFoundMessage("Usuario no encontrado")
		}
		return "", err
	}
	return user.Name, nil
}

// List returns every form with its owner's name.
func (s *FormService) List(ctx context.Context) ([]FormView, error) {
	forms, err := s.forms.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]FormView, 0, len(forms))
	for i := range forms {
		name, err := s.ownerName(ctx, forms[i].UserID)
		if err != nil {
			return nil, err
		}
		views = append(views, s.view(&forms[i], name))
	}
	return views, nil
}

// ListByUser returns the forms owned by one user. The owner is resolved
// once and the name reused for every row.
func (s *FormService) ListByUser(ctx context.Context, userID uint) ([]FormView, error) {
	name, err := s.ownerName(ctx, userID)
	if err != nil {
		return nil, err
	}

	forms, err := s.forms.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]FormView, 0, len(forms))
	for i := range forms {
		views = append(views, s.view(&forms[i], name))
	}
	return views, nil
}

// Create stores a new form with the default active status.
func (s *FormService) Create(ctx context.Context, input CreateFormInput) (*FormView, error) {
	name, err := s.ownerName(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	form := &models.Form{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.FormStatusActive,
	}
	if err := s.forms.Create(ctx, form); err != nil {
		return nil, err
	}

	view := s.view(form, name)
	return &view, nil
}

// Update replaces title, description and status of an existing form.
func (s *FormService) Update(ctx context.Context, input UpdateFormInput) (*FormView, error) {
	form, err := s.forms.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	form.Title = input.Title
	form.Description = input.Description
	form.Status = input.Status
	if err := s.forms.Update(ctx, form); err != nil {
		return nil, err
	}

	name, err := s.ownerName(ctx, form.UserID)
	if err != nil {
		return nil, err
	}
	view := s.view(form, name)
	return &view, nil
}

// Delete removes a form; answers, questions, comments and likes cascade.
func (s *FormService) Delete(ctx context.Context, id uint) error {
	return s.forms.Delete(ctx, id)
}

// ListUnanswered returns the forms the user has not answered yet.
func (s *FormService) ListUnanswered(ctx context.Context, userID uint) ([]FormView, error) {
	forms, err := s.forms.ListUnanswered(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]FormView, 0, len(forms))
	for i := range forms {
		name, err := s.ownerName(ctx, forms[i].UserID)
		if err != nil {
			return nil, err
		}
		views = append(views, s.view(&forms[i], name))
	}
	return views, nil
}

// Search runs the fuzzy form search and enriches each hit with the owner
// name. An empty query after trimming is rejected.
func (s *FormService) Search(ctx context.Context, query string) ([]SearchResultView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Query parameter is required")
	}

	span, ctx := observability.NewSpan(ctx, "service.SearchForms")
	defer span.End()

	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	views := make([]SearchResultView, 0, len(results))
	for _, r := range results {
		name, err := s.ownerName(ctx, r.Form.UserID)
		if err != nil {
			return nil, err
		}
		views = append(views, SearchResultView{
			ID:          r.Form.ID,
			Title:       r.Form.Title,
			Description: r.Form.Description,
			Status:      r.Form.Status,
			CreatedAt:   r.Form.CreatedAt,
			UpdatedAt:   r.Form.UpdatedAt,
			UserID:      r.Form.UserID,
			Name:        name,
		})
	}
	return views, nil
}
