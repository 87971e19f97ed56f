package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateService_SnapshotAndSummary(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := r.stateService()

	p := testutil.NewTestProject("Alpha")
	require.NoError(t, r.projects.Create(ctx, p))
	require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(p.ID, "Done", testutil.WithProgress(100))))
	require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(p.ID, "Late", testutil.WithSchedule("2024-01-01", "2024-01-05"))))
	require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(p.ID, "Due", testutil.WithSchedule("2024-01-08", "2024-01-10"))))

	state, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Projects, 1)
	assert.Len(t, state.Tasks, 3)
	assert.Equal(t, domain.DefaultUIPreferences(), state.UIPreferences)

	sum, err := svc.Summary(ctx, calendar.MustParse("2024-01-10"))
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.Completed)
	assert.Equal(t, 1, sum.DueToday)
	assert.Equal(t, 1, sum.Delayed)
}

func TestStateService_Preferences(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := r.stateService()

	p, err := svc.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ZoomDay, p.GanttZoom)

	p.GanttZoom = domain.ZoomWeek
	p.DayWidth = 6
	require.NoError(t, svc.SavePreferences(ctx, p))

	got, err := svc.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ZoomWeek, got.GanttZoom)
	assert.Equal(t, 6, got.DayWidth)
}

func TestStateService_SavePreferences_Validation(t *testing.T) {
	r := setupRepos(t)
	svc := r.stateService()

	err := svc.SavePreferences(context.Background(), &domain.UIPreferences{GanttZoom: "month", DayWidth: 3})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.SavePreferences(context.Background(), &domain.UIPreferences{GanttZoom: domain.ZoomDay})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
