package domain

import "fmt"

type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "planned"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanned, ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// ParseProjectStatus accepts the stored form of a project status.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(s)
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown project status %q", s)}
	}
	return st, nil
}

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskOnHold     TaskStatus = "on_hold"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskCompleted, TaskOnHold:
		return true
	}
	return false
}

// ParseTaskStatus accepts the stored form of a task status.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown task status %q", s)}
	}
	return st, nil
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority accepts the stored form of a priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", s)}
	}
	return p, nil
}

// GanttZoom is the timeline scale preference.
type GanttZoom string

const (
	ZoomDay  GanttZoom = "day"
	ZoomWeek GanttZoom = "week"
)

func (z GanttZoom) Valid() bool {
	return z == ZoomDay || z == ZoomWeek
}
