package models

import "time"

// Answer is a single response to a question. UserID is nullable so that
// deleting a user keeps the submitted answers (SET NULL), while deleting
// the form or question cascades.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	FormID     uint      `gorm:"not null;index" json:"form_id"`
	UserID     *uint     `gorm:"index" json:"user_id"`
	Answer     string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt  time.Time `json:"created_at"`

	Question Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"question,omitempty"`
	Form     Form     `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"form,omitempty"`
	User     *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
