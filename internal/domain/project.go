package domain

import (
	"strings"
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
)

type Project struct {
	ID        string
	Name      string
	Owner     string
	StartDate calendar.Date
	EndDate   calendar.Date
	Status    ProjectStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks required fields and date ordering.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "project name is required"}
	}
	if p.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Message: "start date is required"}
	}
	if p.EndDate.IsZero() {
		return &ValidationError{Field: "endDate", Message: "end date is required"}
	}
	if p.EndDate.Before(p.StartDate) {
		return &ValidationError{Field: "endDate", Message: "end date " + p.EndDate.String() + " is before start date " + p.StartDate.String()}
	}
	if !p.Status.Valid() {
		return &ValidationError{Field: "status", Message: "unknown project status " + string(p.Status)}
	}
	return nil
}

// DisplayID returns the first 8 characters of the ID.
func (p *Project) DisplayID() string {
	return ShortID(p.ID)
}

// ShortID truncates a UUID-like identifier for display.
func ShortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
