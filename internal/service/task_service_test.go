package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/alexanderramin/ganttline/internal/testutil"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create_DerivesStatusAndPriority(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(r.tasks, r.uow)

	task := &domain.Task{
		Name:         "Build",
		PlannedStart: calendar.MustParse("2024-01-08"),
		PlannedEnd:   calendar.MustParse("2024-01-12"),
		Progress:     30,
	}
	require.NoError(t, svc.Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.TaskInProgress, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
}

func TestTaskService_Create_RejectsInvertedInterval(t *testing.T) {
	r := setupRepos(t)
	svc := NewTaskService(r.tasks, r.uow)

	task := testutil.NewTestTask("", "Backwards", testutil.WithSchedule("2024-01-12", "2024-01-08"))
	err := svc.Create(context.Background(), task)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "plannedEnd", ve.Field)
}

func TestTaskService_ListFiltersByProject(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(r.tasks, r.uow)

	require.NoError(t, svc.Create(ctx, testutil.NewTestTask("p1", "A")))
	require.NoError(t, svc.Create(ctx, testutil.NewTestTask("p2", "B")))
	require.NoError(t, svc.Create(ctx, testutil.NewTestTask("", "C")))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	p1, err := svc.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, p1, 1)
	assert.Equal(t, "A", p1[0].Name)
}

func TestTaskService_SetProgress(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(r.tasks, r.uow)

	task := testutil.NewTestTask("", "Build")
	require.NoError(t, svc.Create(ctx, task))

	updated, err := svc.SetProgress(ctx, task.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, domain.TaskCompleted, updated.Status)

	stored, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, stored.Status)
}

func TestTaskService_Shift(t *testing.T) {
	tests := []struct {
		name      string
		delta     int
		mode      timeline.DragMode
		wantStart string
		wantEnd   string
	}{
		{"move forward", 3, timeline.DragMove, "2024-01-11", "2024-01-15"},
		{"move back", -2, timeline.DragMove, "2024-01-06", "2024-01-10"},
		{"resize start clamps", 10, timeline.DragResizeStart, "2024-01-12", "2024-01-12"},
		{"resize end", 2, timeline.DragResizeEnd, "2024-01-08", "2024-01-14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRepos(t)
			ctx := context.Background()
			obs := &recordingObserver{}
			svc := NewTaskService(r.tasks, r.uow, obs)

			task := testutil.NewTestTask("", "Build")
			require.NoError(t, svc.Create(ctx, task))

			shifted, err := svc.Shift(ctx, task.ID, tt.delta, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, shifted.PlannedStart.String())
			assert.Equal(t, tt.wantEnd, shifted.PlannedEnd.String())

			stored, err := svc.GetByID(ctx, task.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, stored.PlannedStart.String())
			assert.Equal(t, tt.wantEnd, stored.PlannedEnd.String())

			require.Len(t, obs.events, 1)
			assert.Equal(t, "shift-task", obs.events[0].Name)
			assert.True(t, obs.events[0].Success)
		})
	}
}

func TestTaskService_Shift_UnknownMode(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(r.tasks, r.uow)

	task := testutil.NewTestTask("", "Build")
	require.NoError(t, svc.Create(ctx, task))

	_, err := svc.Shift(ctx, task.ID, 1, timeline.DragMode("rotate"))
	assert.ErrorIs(t, err, timeline.ErrUnknownDragMode)
}

func TestTaskService_Shift_MissingTask(t *testing.T) {
	r := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewTaskService(r.tasks, r.uow, obs)

	_, err := svc.Shift(context.Background(), "nope", 1, timeline.DragMove)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestTaskService_ApplyDraft(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(r.tasks, r.uow)

	task := testutil.NewTestTask("", "Build")
	require.NoError(t, svc.Create(ctx, task))

	session, err := timeline.BeginDrag(*task, timeline.DragMove)
	require.NoError(t, err)
	draft := session.Update(4)

	applied, err := svc.ApplyDraft(ctx, task.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-12", applied.PlannedStart.String())
	assert.Equal(t, "2024-01-16", applied.PlannedEnd.String())
	assert.Equal(t, "Build", applied.Name)
}

func TestTaskService_ApplyDraft_RejectsUnorderedDraft(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(r.tasks, r.uow)

	task := testutil.NewTestTask("", "Build")
	require.NoError(t, svc.Create(ctx, task))

	_, err := svc.ApplyDraft(ctx, task.ID, timeline.DragDraft{
		Start: calendar.MustParse("2024-01-10"),
		End:   calendar.MustParse("2024-01-09"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskService_Delete_CascadesWorkLogs(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(r.tasks, r.uow)

	task := testutil.NewTestTask("", "Build")
	other := testutil.NewTestTask("", "Other")
	require.NoError(t, svc.Create(ctx, task))
	require.NoError(t, svc.Create(ctx, other))
	require.NoError(t, r.logs.Create(ctx, testutil.NewTestWorkLog(task.ID, "2024-01-08", "one")))
	require.NoError(t, r.logs.Create(ctx, testutil.NewTestWorkLog(task.ID, "2024-01-09", "two")))
	require.NoError(t, r.logs.Create(ctx, testutil.NewTestWorkLog(other.ID, "2024-01-09", "keep")))

	removed, err := svc.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	logs, err := r.logs.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "keep", logs[0].Note)
}

func TestTaskService_Delete_MissingTaskRollsBack(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewTaskService(r.tasks, r.uow)

	require.NoError(t, r.logs.Create(ctx, testutil.NewTestWorkLog("ghost", "2024-01-08", "orphan")))

	_, err := svc.Delete(ctx, "ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)

	logs, err := r.logs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 1, "log delete must roll back with the failed task delete")
}
