// Package timeline holds the pure interval queries behind the Gantt view and
// the report: period overlap, delay detection, drag resolution and bar
// layout. Nothing here performs I/O or mutates its inputs.
package timeline

import (
	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// EffectiveInterval returns the interval a task occupies for queries.
// A task whose start is after its end is treated as the single day at
// its start.
func EffectiveInterval(t domain.Task) (start, end calendar.Date) {
	if t.PlannedEnd.Before(t.PlannedStart) {
		return t.PlannedStart, t.PlannedStart
	}
	return t.PlannedStart, t.PlannedEnd
}

// TasksInPeriod returns every task whose planned interval intersects
// [from, to], both ends inclusive. An inverted range is swapped before
// filtering. Input order is preserved.
func TasksInPeriod(tasks []domain.Task, from, to calendar.Date) []domain.Task {
	return TasksInRange(tasks, calendar.NewPeriod(from, to))
}

// TasksInRange is TasksInPeriod over a Period value.
func TasksInRange(tasks []domain.Task, p calendar.Period) []domain.Task {
	p = p.Normalize()
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		start, end := EffectiveInterval(t)
		if !start.After(p.To) && !end.Before(p.From) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByProjects keeps tasks whose ProjectID is in ids. An empty ids
// keeps everything.
func FilterByProjects(tasks []domain.Task, ids []string) []domain.Task {
	if len(ids) == 0 {
		return tasks
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if want[t.ProjectID] {
			out = append(out, t)
		}
	}
	return out
}
