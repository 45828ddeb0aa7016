package seed

import (
	"testing"

	"formhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryDryRun(t *testing.T) {
	factory := NewFactory(nil, SeedOptions{DryRun: true, SkipBcrypt: true})

	user, err := factory.CreateUser(func(u *models.User) {
		u.Email = "seeded@example.com"
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "seeded@example.com", user.Email)
	assert.Equal(t, "password123", user.Password)

	form, err := factory.CreateForm(user)
	require.NoError(t, err)
	assert.NotZero(t, form.ID)
	assert.Equal(t, user.ID, form.UserID)
	assert.Equal(t, models.FormStatusActive, form.Status)

	questions, err := factory.CreateQuestions(form, 3)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	for _, q := range questions {
		assert.Equal(t, form.ID, q.FormID)
		assert.NotEmpty(t, q.Question)
	}

	answer, err := factory.CreateAnswer(questions[0], nil)
	require.NoError(t, err)
	assert.Nil(t, answer.UserID, "anonymous answers keep a null user")
	assert.Equal(t, form.ID, answer.FormID)

	comment, err := factory.CreateComment(form, user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, comment.UserID)

	like, err := factory.CreateLike(form, user)
	require.NoError(t, err)
	assert.Equal(t, form.ID, like.FormID)
}

func TestFactoryDryRunAssignsDistinctIDs(t *testing.T) {
	factory := NewFactory(nil, SeedOptions{DryRun: true, SkipBcrypt: true})

	a, err := factory.CreateUser()
	require.NoError(t, err)
	b, err := factory.CreateUser()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRunDryRun(t *testing.T) {
	err := Run(nil, Options{
		NumUsers: 3,
		NumForms: 2,
		Factory:  SeedOptions{DryRun: true, SkipBcrypt: true},
	})
	require.NoError(t, err)
}
