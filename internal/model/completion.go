package model

import "time"

// Completion is one audit-log entry recording who completed a task and when.
// UserID duplicates the owning task's user so owner-wide operations don't
// need a join.
type Completion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TaskID      uint      `gorm:"index" json:"task_id"`
	UserID      uint      `gorm:"index" json:"-"`
	MemberID    *uint     `gorm:"index" json:"member_id,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
