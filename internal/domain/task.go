package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
)

type Task struct {
	ID        string
	ProjectID string // weak reference; "" means unassigned
	Name      string
	Category  string
	Assignee  string
	Notes     string

	PlannedStart calendar.Date
	PlannedEnd   calendar.Date

	Progress int
	Status   TaskStatus
	Priority Priority

	// DependsOn is stored and round-tripped only. Nothing schedules from it.
	DependsOn []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks required fields, progress bounds, enums and that the
// planned interval is ordered.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Message: "task name is required"}
	}
	if t.PlannedStart.IsZero() {
		return &ValidationError{Field: "plannedStart", Message: "planned start is required"}
	}
	if t.PlannedEnd.IsZero() {
		return &ValidationError{Field: "plannedEnd", Message: "planned end is required"}
	}
	if t.PlannedEnd.Before(t.PlannedStart) {
		return &ValidationError{
			Field:   "plannedEnd",
			Message: fmt.Sprintf("planned end %s is before planned start %s", t.PlannedEnd, t.PlannedStart),
		}
	}
	if t.Progress < 0 || t.Progress > 100 {
		return &ValidationError{Field: "progress", Message: fmt.Sprintf("progress %d outside 0..100", t.Progress)}
	}
	if !t.Status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown task status %q", t.Status)}
	}
	if !t.Priority.Valid() {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", t.Priority)}
	}
	return nil
}

// IsComplete reports whether the task counts as done.
func (t *Task) IsComplete() bool {
	return t.Status == TaskCompleted || t.Progress >= 100
}

// DurationDays is the inclusive number of planned days.
func (t *Task) DurationDays() int {
	return calendar.DaysBetween(t.PlannedStart, t.PlannedEnd) + 1
}

// SetProgress clamps p to 0..100 and derives the status from it.
// On-hold tasks keep their status unless they reach 100.
func (t *Task) SetProgress(p int) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	t.Progress = p

	switch {
	case p == 100:
		t.Status = TaskCompleted
	case t.Status == TaskOnHold:
	case p == 0:
		t.Status = TaskNotStarted
	default:
		t.Status = TaskInProgress
	}
}
