package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question belongs to a form. Options carries the choice list for
// select-style questions as a raw JSON array; it is null for free-text
// questions.
type Question struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FormID    uint           `gorm:"not null;index" json:"form_id"`
	Type      string         `gorm:"type:varchar(50);not null" json:"type"`
	Question  string         `gorm:"type:text;not null" json:"question"`
	Options   datatypes.JSON `json:"options,omitempty"`
	Required  bool           `gorm:"default:true" json:"required"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	Form Form `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"form,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
