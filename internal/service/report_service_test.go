package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/report"
	"github.com/alexanderramin/ganttline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekOf(day string) report.Options {
	week := calendar.WeekRange(calendar.MustParse(day))
	return report.Options{
		From:            week.From,
		To:              week.To,
		IncludeAdhoc:    true,
		IncludeWorkLogs: true,
		Today:           week.To,
	}
}

func TestReportService_Generate(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Alpha")
	require.NoError(t, r.projects.Create(ctx, p))
	build := testutil.NewTestTask(p.ID, "Build", testutil.WithSchedule("2024-01-02", "2024-01-20"), testutil.WithProgress(40))
	require.NoError(t, r.tasks.Create(ctx, build))
	require.NoError(t, r.logs.Create(ctx, testutil.NewTestWorkLog(build.ID, "2024-01-03", "schema done")))

	obs := &recordingObserver{}
	svc := NewReportService(r.stateService(), nil, obs)

	out, err := svc.Generate(ctx, weekOf("2024-01-03"), report.English)
	require.NoError(t, err)
	assert.Contains(t, out, "## Progress report for Jan 1 – Jan 7\n")
	assert.Contains(t, out, "- [Alpha] Build (40%)\n  - schema done\n")
	assert.Contains(t, out, "- 2024-01-03 [Alpha] Build: schema done\n")

	require.Len(t, obs.events, 1)
	assert.Equal(t, "build-report", obs.events[0].Name)
	assert.Equal(t, 1, obs.events[0].Fields["in_progress"])
}

func TestReportService_Generate_InvalidOptionsRendersErrorSection(t *testing.T) {
	r := setupRepos(t)
	svc := NewReportService(r.stateService(), nil)

	out, err := svc.Generate(context.Background(), report.Options{}, report.English)
	require.NoError(t, err)
	assert.Contains(t, out, report.English.Error)
}

func TestReportService_Build_LogsDanglingReferences(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	orphan := testutil.NewTestTask("deleted-project", "Orphan", testutil.WithSchedule("2024-01-02", "2024-01-04"), testutil.WithProgress(50))
	require.NoError(t, r.tasks.Create(ctx, orphan))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	svc := NewReportService(r.stateService(), logger)

	rep, err := svc.Build(ctx, weekOf("2024-01-03"))
	require.NoError(t, err)
	require.Len(t, rep.Warnings, 1)
	assert.Equal(t, "Orphan", rep.InProgress[0].Task.Name)
	assert.Contains(t, buf.String(), "dangling reference")
	assert.Contains(t, buf.String(), "target_id=deleted-project")
}
