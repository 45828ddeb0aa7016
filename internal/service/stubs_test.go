package service

import (
	"context"

	"formhub/internal/models"
	"formhub/internal/search"
)

// Function-field repository stubs. Tests set only the funcs they need;
// unset funcs return zero values.

type stubUserRepo struct {
	getByID    func(ctx context.Context, id uint) (*models.User, error)
	getByEmail func(ctx context.Context, email string) (*models.User, error)
	create     func(ctx context.Context, user *models.User) error
	update     func(ctx context.Context, user *models.User) error
	list       func(ctx context.Context) ([]models.User, error)
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("User", id)
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail != nil {
		return s.getByEmail(ctx, email)
	}
	return nil, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.create != nil {
		return s.create(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.update != nil {
		return s.update(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]models.User, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

type stubFormRepo struct {
	getByID        func(ctx context.Context, id uint) (*models.Form, error)
	list           func(ctx context.Context) ([]models.Form, error)
	listByUser     func(ctx context.Context, userID uint) ([]models.Form, error)
	create         func(ctx context.Context, form *models.Form) error
	update         func(ctx context.Context, form *models.Form) error
	delete         func(ctx context.Context, id uint) error
	listUnanswered func(ctx context.Context, userID uint) ([]models.Form, error)
}

func (s *stubFormRepo) GetByID(ctx context.Context, id uint) (*models.Form, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("Form", id)
}

func (s *stubFormRepo) List(ctx context.Context) ([]models.Form, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s *stubFormRepo) ListByUser(ctx context.Context, userID uint) ([]models.Form, error) {
	if s.listByUser != nil {
		return s.listByUser(ctx, userID)
	}
	return nil, nil
}

func (s *stubFormRepo) Create(ctx context.Context, form *models.Form) error {
	if s.create != nil {
		return s.create(ctx, form)
	}
	return nil
}

func (s *stubFormRepo) Update(ctx context.Context, form *models.Form) error {
	if s.update != nil {
		return s.update(ctx, form)
	}
	return nil
}

func (s *stubFormRepo) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

func (s *stubFormRepo) ListUnanswered(ctx context.Context, userID uint) ([]models.Form, error) {
	if s.listUnanswered != nil {
		return s.listUnanswered(ctx, userID)
	}
	return nil, nil
}

type stubQuestionRepo struct {
	getByID        func(ctx context.Context, id uint) (*models.Question, error)
	getByIDForForm func(ctx context.Context, id, formID uint) (*models.Question, error)
	listByForm     func(ctx context.Context, formID uint) ([]models.Question, error)
	create         func(ctx context.Context, question *models.Question) error
	update         func(ctx context.Context, question *models.Question) error
}

func (s *stubQuestionRepo) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("Question", id)
}

func (s *stubQuestionRepo) GetByIDForForm(ctx context.Context, id, formID uint) (*models.Question, error) {
	if s.getByIDForForm != nil {
		return s.getByIDForForm(ctx, id, formID)
	}
	return nil, models.NewNotFoundError("Question", id)
}

func (s *stubQuestionRepo) ListByForm(ctx context.Context, formID uint) ([]models.Question, error) {
	if s.listByForm != nil {
		return s.listByForm(ctx, formID)
	}
	return nil, nil
}

func (s *stubQuestionRepo) Create(ctx context.Context, question *models.Question) error {
	if s.create != nil {
		return s.create(ctx, question)
	}
	return nil
}

func (s *stubQuestionRepo) Update(ctx context.Context, question *models.Question) error {
	if s.update != nil {
		return s.update(ctx, question)
	}
	return nil
}

type stubAnswerRepo struct {
	listByForm func(ctx context.Context, formID uint) ([]models.Answer, error)
	create     func(ctx context.Context, answer *models.Answer) error
	listAll    func(ctx context.Context) ([]models.Answer, error)
}

func (s *stubAnswerRepo) ListByForm(ctx context.Context, formID uint) ([]models.Answer, error) {
	if s.listByForm != nil {
		return s.listByForm(ctx, formID)
	}
	return nil, nil
}

func (s *stubAnswerRepo) Create(ctx context.Context, answer *models.Answer) error {
	if s.create != nil {
		return s.create(ctx, answer)
	}
	return nil
}

func (s *stubAnswerRepo) ListAll(ctx context.Context) ([]models.Answer, error) {
	if s.listAll != nil {
		return s.listAll(ctx)
	}
	return nil, nil
}

type stubCommentRepo struct {
	getByID    func(ctx context.Context, id uint) (*models.Comment, error)
	listByForm func(ctx context.Context, formID uint) ([]models.Comment, error)
	create     func(ctx context.Context, comment *models.Comment) error
	delete     func(ctx context.Context, id uint) error
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, models.NewNotFoundError("Comment", id)
}

func (s *stubCommentRepo) ListByForm(ctx context.Context, formID uint) ([]models.Comment, error) {
	if s.listByForm != nil {
		return s.listByForm(ctx, formID)
	}
	return nil, nil
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if s.create != nil {
		return s.create(ctx, comment)
	}
	return nil
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return nil
}

type stubLikeRepo struct {
	exists      func(ctx context.Context, userID, formID uint) (bool, error)
	create      func(ctx context.Context, like *models.Like) error
	countByForm func(ctx context.Context, formID uint) (int64, error)
}

func (s *stubLikeRepo) Exists(ctx context.Context, userID, formID uint) (bool, error) {
	if s.exists != nil {
		return s.exists(ctx, userID, formID)
	}
	return false, nil
}

func (s *stubLikeRepo) Create(ctx context.Context, like *models.Like) error {
	if s.create != nil {
		return s.create(ctx, like)
	}
	return nil
}

func (s *stubLikeRepo) CountByForm(ctx context.Context, formID uint) (int64, error) {
	if s.countByForm != nil {
		return s.countByForm(ctx, formID)
	}
	return 0, nil
}

type stubSearcher struct {
	search func(ctx context.Context, query string) ([]search.Result, error)
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]search.Result, error) {
	if s.search != nil {
		return s.search(ctx, query)
	}
	return nil, nil
}
