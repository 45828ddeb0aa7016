package seed

import (
	"fmt"
	"log"

	"formhub/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumForms    int
	ShouldClean bool
	Factory     SeedOptions
}

// Run populates the database with a demo dataset: users, forms with
// questions, a spread of answers (some anonymous), comments and likes.
// All foreign keys and the like-uniqueness constraint are respected.
func Run(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d forms...", opts.NumUsers, opts.NumForms)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts.Factory)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d users created", len(users))

	if len(users) == 0 {
		return nil
	}

	forms := make([]*models.Form, 0, opts.NumForms)
	for i := 0; i < opts.NumForms; i++ {
		owner := users[factory.rnd.Intn(len(users))]
		form, err := factory.CreateForm(owner)
		if err != nil {
			return fmt.Errorf("failed to create form: %w", err)
		}
		forms = append(forms, form)

		questions, err := factory.CreateQuestions(form, 2+factory.rnd.Intn(4))
		if err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}

		// a handful of responders per form; occasionally anonymous
		responders := 1 + factory.rnd.Intn(3)
		for r := 0; r < responders; r++ {
			var responder *models.User
			if factory.rnd.Intn(5) != 0 {
				responder = users[factory.rnd.Intn(len(users))]
			}
			for _, question := range questions {
				if _, err := factory.CreateAnswer(question, responder); err != nil {
					return fmt.Errorf("failed to create answer: %w", err)
				}
			}
		}
	}
	log.Printf("%d forms created with questions and answers", len(forms))

	comments := 0
	likes := 0
	for _, form := range forms {
		for i := factory.rnd.Intn(3); i > 0; i-- {
			user := users[factory.rnd.Intn(len(users))]
			if _, err := factory.CreateComment(form, user); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			comments++
		}
		for i := factory.rnd.Intn(len(users) + 1); i > 0; i-- {
			// FirstOrCreate keeps repeat picks idempotent
			user := users[factory.rnd.Intn(len(users))]
			if _, err := factory.CreateLike(form, user); err != nil {
				return fmt.Errorf("failed to create like: %w", err)
			}
			likes++
		}
	}
	log.Printf("%d comments and %d like attempts seeded", comments, likes)

	log.Println("Database seeding completed")
	return nil
}

// clearData removes seeded rows in FK-safe order.
func clearData(db *gorm.DB) error {
	tables := []string{"likes", "comments", "answers", "questions", "forms", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
