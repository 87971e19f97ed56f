package timeline

import (
	"testing"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/stretchr/testify/assert"
)

var d = calendar.MustParse

func span(id, start, end string) domain.Task {
	return domain.Task{ID: id, Name: id, PlannedStart: d(start), PlannedEnd: d(end), Status: domain.TaskNotStarted, Priority: domain.PriorityMedium}
}

func ids(tasks []domain.Task) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestTasksInPeriod_BoundaryTouch(t *testing.T) {
	tasks := []domain.Task{span("a", "2024-01-01", "2024-01-05")}
	got := TasksInPeriod(tasks, d("2024-01-05"), d("2024-01-10"))
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestTasksInPeriod_Intersecting(t *testing.T) {
	tasks := []domain.Task{
		span("a", "2024-01-01", "2024-01-03"),
		span("b", "2024-01-03", "2024-01-05"),
		span("c", "2024-02-01", "2024-02-03"),
	}
	assert.Equal(t, []string{"a", "b"}, ids(TasksInPeriod(tasks, d("2024-01-02"), d("2024-01-04"))))
	assert.Equal(t, []string{"a", "b"}, ids(TasksInPeriod(tasks, d("2024-01-03"), d("2024-01-03"))))
}

func TestTasksInPeriod_AllTouchingOneWindow(t *testing.T) {
	tasks := []domain.Task{
		span("a", "2025-01-01", "2025-01-05"),
		span("b", "2025-01-06", "2025-01-10"),
		span("c", "2025-01-10", "2025-01-12"),
	}
	assert.Len(t, TasksInPeriod(tasks, d("2025-01-05"), d("2025-01-10")), 3)
}

func TestTasksInPeriod_StartOnTo(t *testing.T) {
	tasks := []domain.Task{span("a", "2024-01-10", "2024-01-20")}
	assert.Len(t, TasksInPeriod(tasks, d("2024-01-01"), d("2024-01-10")), 1)
	assert.Empty(t, TasksInPeriod(tasks, d("2024-01-01"), d("2024-01-09")))
}

func TestTasksInPeriod_InvertedRangeIsNormalized(t *testing.T) {
	tasks := []domain.Task{
		span("a", "2024-01-01", "2024-01-03"),
		span("b", "2024-02-01", "2024-02-03"),
	}
	forward := TasksInPeriod(tasks, d("2024-01-02"), d("2024-01-04"))
	inverted := TasksInPeriod(tasks, d("2024-01-04"), d("2024-01-02"))
	assert.Equal(t, ids(forward), ids(inverted))
	assert.Equal(t, []string{"a"}, ids(inverted))
}

func TestTasksInPeriod_InvalidIntervalIsSinglePoint(t *testing.T) {
	bad := span("bad", "2024-01-10", "2024-01-01")

	assert.Len(t, TasksInPeriod([]domain.Task{bad}, d("2024-01-10"), d("2024-01-10")), 1)
	assert.Empty(t, TasksInPeriod([]domain.Task{bad}, d("2024-01-02"), d("2024-01-09")))

	start, end := EffectiveInterval(bad)
	assert.Equal(t, d("2024-01-10"), start)
	assert.Equal(t, d("2024-01-10"), end)
}

func TestTasksInPeriod_DoesNotAliasInput(t *testing.T) {
	tasks := []domain.Task{span("a", "2024-01-01", "2024-01-03")}
	got := TasksInPeriod(tasks, d("2024-01-01"), d("2024-01-31"))
	got[0].Name = "changed"
	assert.Equal(t, "a", tasks[0].Name)
}

func TestFilterByProjects(t *testing.T) {
	a := span("a", "2024-01-01", "2024-01-03")
	a.ProjectID = "p1"
	b := span("b", "2024-01-01", "2024-01-03")
	b.ProjectID = "p2"
	c := span("c", "2024-01-01", "2024-01-03")

	tasks := []domain.Task{a, b, c}
	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterByProjects(tasks, nil)))
	assert.Equal(t, []string{"b"}, ids(FilterByProjects(tasks, []string{"p2"})))
	assert.Empty(t, FilterByProjects(tasks, []string{"p9"}))
}
