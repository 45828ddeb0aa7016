package service

import (
	"context"
	"testing"
	"time"

	"formhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestAnswerService_List(t *testing.T) {
	t.Parallel()

	t.Run("empty set yields empty array", func(t *testing.T) {
		t.Parallel()
		svc := NewAnswerService(&stubAnswerRepo{}, &stubQuestionRepo{}, &stubFormRepo{}, &stubUserRepo{})

		views, err := svc.List(context.Background(), 1)
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("first answerer's name applied to all rows", func(t *testing.T) {
		t.Parallel()
		answers := &stubAnswerRepo{
			listByForm: func(_ context.Context, formID uint) ([]models.Answer, error) {
				return []models.Answer{
					{ID: 1, FormID: formID, QuestionID: 10, UserID: uintPtr(5), Answer: "yes"},
					{ID: 2, FormID: formID, QuestionID: 11, UserID: uintPtr(6), Answer: "no"},
				}, nil
			},
		}
		questions := &stubQuestionRepo{
			getByID: func(_ context.Context, id uint) (*models.Question, error) {
				if id == 10 {
					return &models.Question{ID: id, Question: "first question?"}, nil
				}
				return &models.Question{ID: id, Question: "second question?"}, nil
			},
		}
		users := &stubUserRepo{
			getByID: func(_ context.Context, id uint) (*models.User, error) {
				if id == 5 {
					return &models.User{ID: id, Name: "Ana"}, nil
				}
				return &models.User{ID: id, Name: "Luis"}, nil
			},
		}
		svc := NewAnswerService(answers, questions, activeForm(1), users)

		views, err := svc.List(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, views, 2)

		// legacy contract: every row carries the first answerer's name,
		// question text under question_id, form title under form_id
		assert.Equal(t, "Ana", views[0].UserName)
		assert.Equal(t, "Ana", views[1].UserName)
		assert.Equal(t, "first question?", views[0].Question)
		assert.Equal(t, "Encuesta", views[0].FormTitle)
	})

	t.Run("anonymous first answer leaves name empty", func(t *testing.T) {
		t.Parallel()
		answers := &stubAnswerRepo{
			listByForm: func(_ context.Context, formID uint) ([]models.Answer, error) {
				return []models.Answer{{ID: 1, FormID: formID, QuestionID: 10, Answer: "anon"}}, nil
			},
		}
		svc := NewAnswerService(answers, &stubQuestionRepo{}, activeForm(1), &stubUserRepo{})

		views, err := svc.List(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Empty(t, views[0].UserName)
	})
}

func TestAnswerService_BulkCreate(t *testing.T) {
	t.Parallel()

	var stored []*models.Answer
	answers := &stubAnswerRepo{
		create: func(_ context.Context, a *models.Answer) error {
			a.ID = uint(len(stored) + 1)
			stored = append(stored, a)
			return nil
		},
	}
	svc := NewAnswerService(answers, &stubQuestionRepo{}, &stubFormRepo{}, &stubUserRepo{})

	created, err := svc.BulkCreate(context.Background(), 3, []AnswerInput{
		{QuestionID: 1, UserID: uintPtr(5), Answer: "yes"},
		{QuestionID: 2, Answer: "anonymous"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, uint(3), stored[0].FormID)
	assert.Nil(t, stored[1].UserID)
	assert.Equal(t, uint(2), created[1].ID)
}

func TestAnswerService_LatestPerFormUser(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	answers := &stubAnswerRepo{
		listAll: func(_ context.Context) ([]models.Answer, error) {
			return []models.Answer{
				{ID: 1, FormID: 1, UserID: uintPtr(5), CreatedAt: base},
				{ID: 2, FormID: 1, UserID: uintPtr(5), CreatedAt: base.Add(time.Hour)},
				{ID: 3, FormID: 1, UserID: uintPtr(6), CreatedAt: base.Add(2 * time.Hour)},
				{ID: 4, FormID: 2, UserID: uintPtr(5), CreatedAt: base.Add(3 * time.Hour)},
			}, nil
		},
	}
	forms := &stubFormRepo{
		getByID: func(_ context.Context, id uint) (*models.Form, error) {
			return &models.Form{ID: id, Title: "form"}, nil
		},
	}
	users := &stubUserRepo{
		getByID: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Ana"}, nil
		},
	}
	svc := NewAnswerService(answers, &stubQuestionRepo{}, forms, users)

	views, err := svc.LatestPerFormUser(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3, "one row per distinct (form, user) pair")

	// first-seen wins: the row for (form 1, user 5) keeps the earliest timestamp
	assert.Equal(t, uint(1), views[0].ID)
	assert.Equal(t, base, views[0].CreatedAt)
	assert.Equal(t, uint(2), views[2].ID)
}
