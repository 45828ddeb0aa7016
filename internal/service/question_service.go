package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"formhub/internal/models"
	"formhub/internal/repository"

	"gorm.io/datatypes"
)

// QuestionService handles listing and bulk writes of form questions.
type QuestionService struct {
	questions repository.QuestionRepository
	forms     repository.FormRepository
}

// NewQuestionService constructs a QuestionService.
func NewQuestionService(questions repository.QuestionRepository, forms repository.FormRepository) *QuestionService {
	return &QuestionService{questions: questions, forms: forms}
}

// QuestionInput is one item of a bulk create or upsert payload.
type QuestionInput struct {
	QuestionID uint            `json:"question_id,omitempty"`
	Type       string          `json:"type"`
	Question   string          `json:"question"`
	Options    json.RawMessage `json:"options,omitempty"`
	Required   *bool           `json:"required,omitempty"`
}

// QuestionView is the wire shape of a question when listing a form,
// enriched with the form's title and description. The required flag is
// write-only on this API: clients send it on create/upsert but the list
// endpoint has never emitted it.
type QuestionView struct {
	FormTitle   string          `json:"form_title"`
	QuestionID  uint            `json:"question_id"`
	FormID      uint            `json:"form_id"`
	Question    string          `json:"question"`
	Type        string          `json:"type"`
	Options     json.RawMessage `json:"options"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Description string          `json:"description"`
}

// CreatedQuestionView is the wire shape echoed after a bulk create.
type CreatedQuestionView struct {
	ID        uint            `json:"id"`
	Type      string          `json:"type"`
	FormID    uint            `json:"form_id"`
	Question  string          `json:"question"`
	Options   json.RawMessage `json:"options"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UpsertEntry reports the outcome for one item of a bulk upsert.
type UpsertEntry struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	QuestionID uint   `json:"question_id,omitempty"`
}

// optionsOrEmpty renders stored options as [] when null, which is what the
// clients expect for free-text questions.
func optionsOrEmpty(options datatypes.JSON) json.RawMessage {
	if len(options) == 0 {
		return json.RawMessage("[]")
	}
	return json.RawMessage(options)
}

// List returns a form's questions together with the form title and
// description. A form without questions is an error, not an empty list.
func (s *QuestionService) List(ctx context.Context, formID uint) ([]QuestionView, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewNotFoundMessage("Form not found")
		}
		return nil, err
	}

	questions, err := s.questions.ListByForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, models.NewNotFoundMessage("No questions found for this form")
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuestionView{
			FormTitle:   form.Title,
			QuestionID:  q.ID,
			FormID:      q.FormID,
			Question:    q.Question,
			Type:        q.Type,
			Options:     optionsOrEmpty(q.Options),
			CreatedAt:   q.CreatedAt,
			UpdatedAt:   q.UpdatedAt,
			Description: form.Description,
		})
	}
	return views, nil
}

// BulkCreate inserts each question independently. A failing item aborts the
// loop but the rows already written stay; there is no enclosing transaction.
func (s *QuestionService) BulkCreate(ctx context.Context, formID uint, inputs []QuestionInput) ([]CreatedQuestionView, error) {
	if _, err := s.forms.GetByID(ctx, formID); err != nil {
		return nil, err
	}

	created := make([]CreatedQuestionView, 0, len(inputs))
	for _, input := range inputs {
		question := &models.Question{
			FormID:   formID,
			Type:     input.Type,
			Question: input.Question,
			Options:  datatypes.JSON(input.Options),
			Required: requiredOrDefault(input.Required),
		}
		if err := s.questions.Create(ctx, question); err != nil {
			return created, err
		}
		created = append(created, CreatedQuestionView{
			ID:        question.ID,
			Type:      question.Type,
			FormID:    question.FormID,
			Question:  question.Question,
			Options:   optionsOrEmpty(question.Options),
			CreatedAt: question.CreatedAt,
			UpdatedAt: question.UpdatedAt,
		})
	}
	return created, nil
}

func requiredOrDefault(required *bool) bool {
	if required == nil {
		return true
	}
	return *required
}

// BulkUpsert processes each item independently and reports a per-item
// outcome:
//   - question/type missing: an error entry, processing continues
//   - question_id present and found on this form: updated in place
//   - question_id present but unknown, or absent: created
func (s *QuestionService) BulkUpsert(ctx context.Context, formID uint, inputs []QuestionInput) []UpsertEntry {
	entries := make([]UpsertEntry, 0, len(inputs))

	for _, input := range inputs {
		if missing := missingFields(input); len(missing) > 0 {
			entries = append(entries, UpsertEntry{
				Status:     "error",
				Message:    "Missing required fields: " + strings.Join(missing, ", "),
				QuestionID: input.QuestionID,
			})
			continue
		}

		if input.QuestionID != 0 {
			question, err := s.questions.GetByIDForForm(ctx, input.QuestionID, formID)
			if err == nil {
				question.Type = input.Type
				question.Question = input.Question
				question.Options = datatypes.JSON(input.Options)
				// an omitted required leaves the stored flag alone; the
				// true default applies only when creating
				if input.Required != nil {
					question.Required = *input.Required
				}
				if err := s.questions.Update(ctx, question); err != nil {
					entries = append(entries, UpsertEntry{Status: "error", Message: err.Error(), QuestionID: question.ID})
					continue
				}
				entries = append(entries, UpsertEntry{Status: "updated", QuestionID: question.ID})
				continue
			}
			if !models.IsNotFound(err) {
				entries = append(entries, UpsertEntry{Status: "error", Message: err.Error(), QuestionID: input.QuestionID})
				continue
			}
			// unknown id falls through to create
		}

		question := &models.Question{
			FormID:   formID,
			Type:     input.Type,
			Question: input.Question,
			Options:  datatypes.JSON(input.Options),
			Required: requiredOrDefault(input.Required),
		}
		if err := s.questions.Create(ctx, question); err != nil {
			entries = append(entries, UpsertEntry{Status: "error", Message: err.Error(), QuestionID: input.QuestionID})
			continue
		}
		entries = append(entries, UpsertEntry{Status: "created", QuestionID: question.ID})
	}

	return entries
}

func missingFields(input QuestionInput) []string {
	var missing []string
	if strings.TrimSpace(input.Question) == "" {
		missing = append(missing, "question")
	}
	if strings.TrimSpace(input.Type) == "" {
		missing = append(missing, "type")
	}
	return missing
}
