package model

import "time"

// Category groups tasks by area (kitchen, garden, pets, etc.).
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;index:idx_user_category_name,unique" json:"-"`
	Name      string    `gorm:"index:idx_user_category_name,unique" json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
