// Package taskstatus derives a follow-up task's display status from its
// completion flag and due date. It is the single source of truth for the
// date comparison: dashboard counts, leaderboard rollups and per-task
// rendering all classify through here.
package taskstatus

import "time"

type Status string

const (
	StatusNone     Status = "none"
	StatusOverdue  Status = "overdue"
	StatusDueToday Status = "due_today"
	StatusDueSoon  Status = "due_soon"
)

// DefaultWindowDays is the look-ahead window for due_soon.
const DefaultWindowDays = 3

// Classify maps a task to exactly one status. Completed tasks and tasks
// without a due date are StatusNone. Only the calendar date matters; time
// components and locations are stripped before comparison.
func Classify(completed bool, dueDate *time.Time, today time.Time, windowDays int) Status {
	if completed || dueDate == nil {
		return StatusNone
	}

	due := truncateToDate(*dueDate)
	now := truncateToDate(today)

	switch {
	case due.Before(now):
		return StatusOverdue
	case due.Equal(now):
		return StatusDueToday
	case !due.After(now.AddDate(0, 0, windowDays)):
		return StatusDueSoon
	default:
		return StatusNone
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
