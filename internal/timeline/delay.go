package timeline

import (
	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// CalculateTaskDelay returns how many days the task is overdue as of
// today. ok is false when the task is finished (progress >= 100) or its
// planned end is today or later; when ok is true days is always >= 1.
func CalculateTaskDelay(t domain.Task, today calendar.Date) (days int, ok bool) {
	if t.Progress >= 100 {
		return 0, false
	}
	_, end := EffectiveInterval(t)
	if !end.Before(today) {
		return 0, false
	}
	return calendar.DaysBetween(end, today), true
}

// DelayedTasks returns the tasks CalculateTaskDelay reports as overdue,
// in input order.
func DelayedTasks(tasks []domain.Task, today calendar.Date) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		if _, ok := CalculateTaskDelay(t, today); ok {
			out = append(out, t)
		}
	}
	return out
}

// DueOn returns unfinished tasks whose planned end is day.
func DueOn(tasks []domain.Task, day calendar.Date) []domain.Task {
	out := make([]domain.Task, 0)
	for _, t := range tasks {
		_, end := EffectiveInterval(t)
		if end.Equal(day) && t.Progress < 100 {
			out = append(out, t)
		}
	}
	return out
}

// Summary is the headline count shown above the task list.
type Summary struct {
	Total     int
	Completed int
	DueToday  int
	Delayed   int
}

// Summarize counts tasks by headline category as of today.
func Summarize(tasks []domain.Task, today calendar.Date) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsComplete() {
			s.Completed++
		}
	}
	s.DueToday = len(DueOn(tasks, today))
	s.Delayed = len(DelayedTasks(tasks, today))
	return s
}
