package timeline

import (
	"sort"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// DefaultEmptySpan is the chart width in days when there are no tasks.
const DefaultEmptySpan = 30

// Bounds returns the chart range covering all tasks, padded by padBefore
// days on the left and padAfter on the right. With no tasks it spans
// today..today+DefaultEmptySpan.
func Bounds(tasks []domain.Task, today calendar.Date, padBefore, padAfter int) calendar.Period {
	if len(tasks) == 0 {
		return calendar.NewPeriod(today, calendar.AddDays(today, DefaultEmptySpan))
	}
	minStart, maxEnd := EffectiveInterval(tasks[0])
	for _, t := range tasks[1:] {
		start, end := EffectiveInterval(t)
		minStart = calendar.Min(minStart, start)
		maxEnd = calendar.Max(maxEnd, end)
	}
	return calendar.NewPeriod(calendar.AddDays(minStart, -padBefore), calendar.AddDays(maxEnd, padAfter))
}

// Bar is one task row placed on the chart grid.
type Bar struct {
	Task    domain.Task
	Offset  int // days from the chart start
	Length  int // inclusive day count
	Delayed bool
	Overdue int
}

// Chart is the grid for a set of tasks.
type Chart struct {
	Bounds calendar.Period
	Days   []calendar.Date
	Bars   []Bar
	Today  calendar.Date
}

// Layout places tasks on a grid spanning bounds. Rows are ordered by
// planned start, ties by input order. Bars that fall outside the bounds
// keep their true offset; the renderer clips.
func Layout(tasks []domain.Task, bounds calendar.Period, today calendar.Date) Chart {
	bounds = bounds.Normalize()
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, _ := EffectiveInterval(sorted[i])
		sj, _ := EffectiveInterval(sorted[j])
		return si.Before(sj)
	})

	bars := make([]Bar, 0, len(sorted))
	for _, t := range sorted {
		start, end := EffectiveInterval(t)
		overdue, delayed := CalculateTaskDelay(t, today)
		bars = append(bars, Bar{
			Task:    t,
			Offset:  calendar.DaysBetween(bounds.From, start),
			Length:  calendar.DaysBetween(start, end) + 1,
			Delayed: delayed,
			Overdue: overdue,
		})
	}

	return Chart{
		Bounds: bounds,
		Days:   calendar.Range(bounds.From, bounds.To),
		Bars:   bars,
		Today:  today,
	}
}
