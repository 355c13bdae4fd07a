package model

import "time"

// Member is a household member tasks can be assigned to. Members are plain
// display entries owned by a user; they do not log in themselves.
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
