package model

import "time"

// Task is a single chore. Recurring tasks repeat every IntervalDays after the
// last completion; one-time tasks carry an optional fixed DueDate instead.
// Exactly one of the two is meaningful, selected by IsRecurring; the inactive
// field is kept NULL by the service layer, not by a database constraint.
type Task struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index" json:"-"`
	CategoryID   *uint      `gorm:"index" json:"category_id,omitempty"`
	MemberID     *uint      `gorm:"index" json:"member_id,omitempty"`
	Name         string     `json:"name"`
	Notes        string     `json:"notes,omitempty"`
	IsRecurring  bool       `gorm:"default:false" json:"is_recurring"`
	IntervalDays *int       `json:"interval_days,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`

	// LastCompletedAt caches the timestamp of the latest surviving completion
	// record for this task. Maintained by the completion repository; NULL when
	// the task has never been completed or its history was cleared.
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
