package service

import (
	"context"
	"time"

	"formhub/internal/models"
	"formhub/internal/repository"
)

// AnswerService handles submitting answers and the two read aggregates.
type AnswerService struct {
	answers   repository.AnswerRepository
	questions repository.QuestionRepository
	forms     repository.FormRepository
	users     repository.UserRepository
}

// NewAnswerService constructs an AnswerService.
func NewAnswerService(
	answers repository.AnswerRepository,
	questions repository.QuestionRepository,
	forms repository.FormRepository,
	users repository.UserRepository,
) *AnswerService {
	return &AnswerService{answers: answers, questions: questions, forms: forms, users: users}
}

// AnswerInput is one item of a bulk answer submission.
type AnswerInput struct {
	QuestionID uint   `json:"question_id"`
	UserID     *uint  `json:"user_id"`
	Answer     string `json:"answer"`
}

// AnswerView is the wire shape of one answer row. The key names are part of
// the legacy contract: question_id carries the question text and form_id
// carries the form title.
type AnswerView struct {
	ID        uint      `json:"id"`
	Question  string    `json:"question_id"`
	FormTitle string    `json:"form_id"`
	UserName  string    `json:"user_name"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatedAnswerView echoes a stored answer after a bulk create.
type CreatedAnswerView struct {
	ID         uint      `json:"id"`
	FormID     uint      `json:"form_id"`
	QuestionID uint      `json:"question_id"`
	UserID     *uint     `json:"user_id"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}

// ResponseSummaryView is one row of the latest-response aggregate. Its id
// field is the form ID, not an answer ID.
type ResponseSummaryView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
}

// List returns a form's answers. The responder name comes from the first
// row's user and is applied to every row; the clients rely on that. An
// unanswered form yields an empty array.
func (s *AnswerService) List(ctx context.Context, formID uint) ([]AnswerView, error) {
	answers, err := s.answers.ListByForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return []AnswerView{}, nil
	}

	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	userName := ""
	if first := answers[0].UserID; first != nil {
		if user, err := s.users.GetByID(ctx, *first); err == nil {
			userName = user.Name
		}
	}

	views := make([]AnswerView, 0, len(answers))
	for _, a := range answers {
		questionText := ""
		if q, err := s.questions.GetByID(ctx, a.QuestionID); err == nil {
			questionText = q.Question
		}
		views = append(views, AnswerView{
			ID:        a.ID,
			Question:  questionText,
			FormTitle: form.Title,
			UserName:  userName,
			Answer:    a.Answer,
			CreatedAt: a.CreatedAt,
		})
	}
	return views, nil
}

// BulkCreate stores each answer independently. There is deliberately no
// form-existence check; the FK constraints reject truly dangling rows.
func (s *AnswerService) BulkCreate(ctx context.Context, formID uint, inputs []AnswerInput) ([]CreatedAnswerView, error) {
	created := make([]CreatedAnswerView, 0, len(inputs))
	for _, input := range inputs {
		answer := &models.Answer{
			QuestionID: input.QuestionID,
			FormID:     formID,
			UserID:     input.UserID,
			Answer:     input.Answer,
		}
		if err := s.answers.Create(ctx, answer); err != nil {
			return created, err
		}
		created = append(created, CreatedAnswerView{
			ID:         answer.ID,
			FormID:     answer.FormID,
			QuestionID: answer.QuestionID,
			UserID:     answer.UserID,
			Answer:     answer.Answer,
			CreatedAt:  answer.CreatedAt,
		})
	}
	return created, nil
}

type formUserKey struct {
	formID  uint
	userID  uint
	hasUser bool
}

// LatestPerFormUser walks every answer in insertion order and keeps the
// first row seen per (form, user) pair, summarizing who responded to which
// form and when they first did.
func (s *AnswerService) LatestPerFormUser(ctx context.Context) ([]ResponseSummaryView, error) {
	answers, err := s.answers.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[formUserKey]struct{})
	views := make([]ResponseSummaryView, 0)

	for _, a := range answers {
		key := formUserKey{formID: a.FormID}
		if a.UserID != nil {
			key.userID = *a.UserID
			key.hasUser = true
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		form, err := s.forms.GetByID(ctx, a.FormID)
		if err != nil {
			return nil, err
		}

		name := ""
		if a.UserID != nil {
			if user, err := s.users.GetByID(ctx, *a.UserID); err == nil {
				name = user.Name
			}
		}

		views = append(views, ResponseSummaryView{
			ID:        a.FormID,
			Title:     form.Title,
			CreatedAt: a.CreatedAt,
			Name:      name,
		})
	}
	return views, nil
}
