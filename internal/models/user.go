package models

import "time"

// User is an account that owns forms and submits answers, comments and
// likes. Password always holds a bcrypt hash and never serializes.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(150);not null" json:"name"`
	Email     string     `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Role      string     `gorm:"type:varchar(50);default:'user'" json:"role"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Forms []Form `gorm:"foreignKey:UserID" json:"forms,omitempty"`
}

func (User) TableName() string {
	return "users"
}
