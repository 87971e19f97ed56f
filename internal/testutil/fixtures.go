package testutil

import (
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithOwner(owner string) ProjectOption {
	return func(p *domain.Project) {
		p.Owner = owner
	}
}

func WithProjectDates(start, end string) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = calendar.MustParse(start)
		p.EndDate = calendar.MustParse(end)
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: calendar.MustParse("2024-01-01"),
		EndDate:   calendar.MustParse("2024-03-31"),
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithSchedule(start, end string) TaskOption {
	return func(t *domain.Task) {
		t.PlannedStart = calendar.MustParse(start)
		t.PlannedEnd = calendar.MustParse(end)
	}
}

// WithProgress sets progress and derives the status from it.
func WithProgress(p int) TaskOption {
	return func(t *domain.Task) {
		t.SetProgress(p)
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithAssignee(a string) TaskOption {
	return func(t *domain.Task) {
		t.Assignee = a
	}
}

func WithNotes(n string) TaskOption {
	return func(t *domain.Task) {
		t.Notes = n
	}
}

func WithDependsOn(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.DependsOn = ids
	}
}

func NewTestTask(projectID, name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		Name:         name,
		PlannedStart: calendar.MustParse("2024-01-08"),
		PlannedEnd:   calendar.MustParse("2024-01-12"),
		Status:       domain.TaskNotStarted,
		Priority:     domain.PriorityMedium,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestWorkLog(taskID, date, note string) *domain.WorkLog {
	return &domain.WorkLog{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		Date:      calendar.MustParse(date),
		Note:      note,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestAdhoc(date, title string) *domain.AdhocTask {
	return &domain.AdhocTask{
		ID:        uuid.New().String(),
		Date:      calendar.MustParse(date),
		Title:     title,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
