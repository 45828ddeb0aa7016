// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"formhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedOptions tunes factory behavior.
type SeedOptions struct {
	// DryRun logs what would be written without touching the database.
	DryRun bool
	// SkipBcrypt stores a plain password for faster dev seeding.
	SkipBcrypt bool
	// MaxDays bounds how far back generated created_at timestamps reach.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rnd  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

// createdAtSpread returns a timestamp between now and MaxDays ago so seeded
// data does not all share one creation instant.
func (f *Factory) createdAtSpread() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

func (f *Factory) dryCreate(kind string, assign func(id uint)) {
	f.nextID++
	assign(f.nextID)
	log.Printf("[dry-run] Create%s: id=%d (no DB write)", kind, f.nextID)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:  gofakeit.Name(),
		Email: gofakeit.Email(),
		Role:  "user",
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.dryCreate("User", func(id uint) { user.ID = id })
		return user, nil
	}

	if err := f.db.Where(models.User{Email: user.Email}).FirstOrCreate(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateForm constructs and persists a form owned by the given user.
func (f *Factory) CreateForm(owner *models.User, overrides ...func(*models.Form)) (*models.Form, error) {
	form := &models.Form{
		UserID:      owner.ID,
		Title:       fmt.Sprintf("%s survey", gofakeit.BuzzWord()),
		Description: gofakeit.Sentence(12),
		Status:      models.FormStatusActive,
		CreatedAt:   f.createdAtSpread(),
	}

	for _, override := range overrides {
		override(form)
	}

	if f.opts.DryRun {
		f.dryCreate("Form", func(id uint) { form.ID = id })
		return form, nil
	}

	if err := f.db.Create(form).Error; err != nil {
		return nil, err
	}
	return form, nil
}

var questionTypes = []string{"text", "textarea", "select", "radio", "checkbox"}

// CreateQuestions persists n questions on the form. Choice-typed questions
// get a generated options array; free-text ones keep options null.
func (f *Factory) CreateQuestions(form *models.Form, n int) ([]*models.Question, error) {
	questions := make([]*models.Question, 0, n)
	for i := 0; i < n; i++ {
		qType := questionTypes[f.rnd.Intn(len(questionTypes))]
		question := &models.Question{
			FormID:   form.ID,
			Type:     qType,
			Question: gofakeit.Question(),
			Required: f.rnd.Intn(4) != 0,
		}
		switch qType {
		case "select", "radio", "checkbox":
			question.Options = datatypes.JSON(fmt.Sprintf(`["%s","%s","%s"]`,
				gofakeit.Color(), gofakeit.Color(), gofakeit.Color()))
		}

		if f.opts.DryRun {
			f.dryCreate("Question", func(id uint) { question.ID = id })
		} else if err := f.db.Create(question).Error; err != nil {
			return questions, err
		}
		questions = append(questions, question)
	}
	return questions, nil
}

// CreateAnswer persists one answer. Pass a nil user for an anonymous answer.
func (f *Factory) CreateAnswer(question *models.Question, user *models.User, overrides ...func(*models.Answer)) (*models.Answer, error) {
	answer := &models.Answer{
		QuestionID: question.ID,
		FormID:     question.FormID,
		Answer:     gofakeit.Phrase(),
		CreatedAt:  f.createdAtSpread(),
	}
	if user != nil {
		answer.UserID = &user.ID
	}

	for _, override := range overrides {
		override(answer)
	}

	if f.opts.DryRun {
		f.dryCreate("Answer", func(id uint) { answer.ID = id })
		return answer, nil
	}

	if err := f.db.Create(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

// CreateComment persists a comment by the user on the form.
func (f *Factory) CreateComment(form *models.Form, user *models.User, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		FormID:    form.ID,
		UserID:    user.ID,
		Comment:   gofakeit.Sentence(8),
		CreatedAt: f.createdAtSpread(),
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.dryCreate("Comment", func(id uint) { comment.ID = id })
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like, respecting the one-like-per-user-per-form
// constraint via FirstOrCreate.
func (f *Factory) CreateLike(form *models.Form, user *models.User) (*models.Like, error) {
	like := &models.Like{
		FormID: form.ID,
		UserID: user.ID,
	}

	if f.opts.DryRun {
		f.dryCreate("Like", func(id uint) { like.ID = id })
		return like, nil
	}

	if err := f.db.Where(models.Like{FormID: form.ID, UserID: user.ID}).
		FirstOrCreate(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}
