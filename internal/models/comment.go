package models

import "time"

// Comment is free text a user leaves on a form.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FormID    uint      `gorm:"not null;index" json:"form_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Form Form `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"form,omitempty"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
