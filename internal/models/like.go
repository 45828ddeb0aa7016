package models

import "time"

// Like marks that a user liked a form. The composite unique index makes
// the pair idempotent at the store level regardless of request races.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_form" json:"user_id"`
	FormID    uint      `gorm:"not null;uniqueIndex:idx_like_user_form" json:"form_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Form Form `gorm:"foreignKey:FormID;constraint:OnDelete:CASCADE" json:"form,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}
