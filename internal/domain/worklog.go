package domain

import (
	"strings"
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
)

// WorkLog is a dated note recorded against a task.
type WorkLog struct {
	ID            string
	TaskID        string
	Date          calendar.Date
	Note          string
	Hours         *float64
	ProgressAfter *int
	CreatedAt     time.Time
}

func (w *WorkLog) Validate() error {
	if w.TaskID == "" {
		return &ValidationError{Field: "taskId", Message: "task is required"}
	}
	if w.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "date is required"}
	}
	if strings.TrimSpace(w.Note) == "" {
		return &ValidationError{Field: "workNote", Message: "note is required"}
	}
	if w.Hours != nil && *w.Hours < 0 {
		return &ValidationError{Field: "hours", Message: "hours must not be negative"}
	}
	if w.ProgressAfter != nil && (*w.ProgressAfter < 0 || *w.ProgressAfter > 100) {
		return &ValidationError{Field: "progressAfter", Message: "progress outside 0..100"}
	}
	return nil
}

// AdhocTask is unscheduled work recorded for reporting only.
type AdhocTask struct {
	ID               string
	Date             calendar.Date
	Title            string
	Detail           string
	Hours            *float64
	RelatedProjectID string
	CreatedAt        time.Time
}

func (a *AdhocTask) Validate() error {
	if a.Date.IsZero() {
		return &ValidationError{Field: "date", Message: "date is required"}
	}
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if a.Hours != nil && *a.Hours < 0 {
		return &ValidationError{Field: "hours", Message: "hours must not be negative"}
	}
	return nil
}
