// Package schedule derives a task's lifecycle state from its recurrence
// configuration and completion history. It is pure computation: the reference
// date is always an explicit parameter, so results are deterministic and
// never depend on ambient time.
package schedule

import (
	"time"

	"choreboard/internal/model"
)

// Status is the derived lifecycle state of a task. It is recomputed on every
// read and never stored.
type Status string

const (
	StatusDone    Status = "done"
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
)

// Result pairs a status with the instant at which it would next change.
type Result struct {
	Status  Status    `json:"status"`
	NextDue time.Time `json:"next_due"`
}

// Midnight truncates t to the start of its calendar day, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns the current date normalized to local midnight. Callers thread
// it into Compute explicitly; nothing in this package reads the clock itself.
func Today() time.Time {
	return Midnight(time.Now())
}

// Compute derives the status and next-due date of a task for the given
// reference day. It is total over well-formed tasks; malformed input (a
// recurring task with no interval) is rejected by validation before it is
// ever stored, and degrades here to a zero-day interval rather than failing.
//
// One-time tasks are never "done" from this function's perspective:
// completing one removes it from the active listing instead (see
// TaskRepository.ListActive).
func Compute(task model.Task, today time.Time) Result {
	today = Midnight(today)

	if !task.IsRecurring {
		if task.DueDate == nil {
			// No deadline recorded: a "someday" task, permanently current.
			return Result{Status: StatusPending, NextDue: today}
		}
		due := Midnight(task.DueDate.In(today.Location()))
		if due.Before(today) {
			return Result{Status: StatusOverdue, NextDue: due}
		}
		return Result{Status: StatusPending, NextDue: due}
	}

	if task.LastCompletedAt == nil {
		// Never completed: immediately due.
		return Result{Status: StatusOverdue, NextDue: today}
	}

	interval := 0
	if task.IntervalDays != nil {
		interval = *task.IntervalDays
	}

	// Calendar-day arithmetic on date components, not 24h multiples, so DST
	// transitions still count as one day.
	next := Midnight(task.LastCompletedAt.In(today.Location())).AddDate(0, 0, interval)

	switch {
	case next.After(today):
		return Result{Status: StatusDone, NextDue: next}
	case next.Before(today):
		return Result{Status: StatusOverdue, NextDue: next}
	default:
		// The boundary day (interval exactly elapsed) is pending: the task
		// should nag on its due day, not report done.
		return Result{Status: StatusPending, NextDue: next}
	}
}
