package report

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var d = calendar.MustParse

func task(id, project, name, start, end string, progress int, status domain.TaskStatus) domain.Task {
	return domain.Task{
		ID:           id,
		ProjectID:    project,
		Name:         name,
		PlannedStart: d(start),
		PlannedEnd:   d(end),
		Progress:     progress,
		Status:       status,
		Priority:     domain.PriorityMedium,
	}
}

func sampleState() *domain.AppState {
	s := domain.NewAppState()
	s.Projects = []domain.Project{{ID: "p1", Name: "Alpha", Status: domain.ProjectActive}}
	late := task("late", "gone", "Vendor sync", "2023-12-20", "2024-01-04", 20, domain.TaskInProgress)
	late.Notes = "waiting on vendor"
	s.Tasks = []domain.Task{
		task("done", "p1", "Design", "2024-01-01", "2024-01-03", 100, domain.TaskCompleted),
		task("wip", "p1", "Build", "2024-01-02", "2024-01-10", 40, domain.TaskInProgress),
		late,
		task("future", "p1", "Launch", "2024-02-01", "2024-02-05", 0, domain.TaskNotStarted),
	}
	s.WorkLogs = []domain.WorkLog{
		{ID: "w1", TaskID: "wip", Date: d("2024-01-03"), Note: "first"},
		{ID: "w2", TaskID: "wip", Date: d("2024-01-05"), Note: "second"},
		{ID: "w3", TaskID: "wip", Date: d("2024-01-05"), Note: "third", Hours: domain.Float64Ptr(1.5)},
		{ID: "w4", TaskID: "wip", Date: d("2024-01-20"), Note: "outside"},
	}
	return s
}

func weekOpts() Options {
	return Options{
		From:            d("2024-01-01"),
		To:              d("2024-01-07"),
		IncludeAdhoc:    true,
		IncludeWorkLogs: true,
		Today:           d("2024-01-08"),
	}
}

func taskIDs(entries []TaskEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Task.ID)
	}
	return out
}

func TestBuild_Groups(t *testing.T) {
	r, err := Build(sampleState(), weekOpts())
	require.NoError(t, err)

	assert.Equal(t, []string{"done"}, taskIDs(r.Completed))
	assert.Equal(t, []string{"wip", "late"}, taskIDs(r.InProgress))
	assert.Equal(t, []string{"late"}, taskIDs(r.Delayed), "delay is measured against the period end")
	assert.Equal(t, 3, r.Delayed[0].OverdueDays)
	assert.Equal(t, []string{"wip", "late"}, taskIDs(r.NextSteps))
}

func TestBuild_LatestNoteTieGoesToLaterEntry(t *testing.T) {
	r, err := Build(sampleState(), weekOpts())
	require.NoError(t, err)
	require.Len(t, r.InProgress, 2)
	assert.Equal(t, "third", r.InProgress[0].LatestNote)
	assert.Empty(t, r.InProgress[1].LatestNote)
}

func TestBuild_NoNotesWithoutWorkLogs(t *testing.T) {
	opts := weekOpts()
	opts.IncludeWorkLogs = false
	r, err := Build(sampleState(), opts)
	require.NoError(t, err)
	assert.Empty(t, r.InProgress[0].LatestNote)
	assert.Empty(t, r.WorkLogs)
}

func TestBuild_DanglingProjectWarns(t *testing.T) {
	r, err := Build(sampleState(), weekOpts())
	require.NoError(t, err)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, domain.RefTaskProject, r.Warnings[0].Kind)
	assert.Equal(t, "late", r.Warnings[0].SourceID)
	assert.Equal(t, "gone", r.Warnings[0].TargetID)
}

func TestBuild_InvertedPeriodIsSwapped(t *testing.T) {
	opts := weekOpts()
	opts.From, opts.To = opts.To, opts.From
	r, err := Build(sampleState(), opts)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", r.Period.From.String())
	assert.Equal(t, "2024-01-07", r.Period.To.String())
	assert.Equal(t, []string{"done"}, taskIDs(r.Completed))
}

func TestBuild_ProjectFilter(t *testing.T) {
	opts := weekOpts()
	opts.ProjectIDs = []string{"p1"}
	r, err := Build(sampleState(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"wip"}, taskIDs(r.InProgress))
	assert.Empty(t, r.Delayed)
	assert.Empty(t, r.Warnings)
}

func TestRender_ProjectsOverview(t *testing.T) {
	s := sampleState()
	s.Projects[0].StartDate = d("2024-01-01")
	s.Projects[0].EndDate = d("2024-03-31")
	s.Projects = append(s.Projects, domain.Project{ID: "p2", Name: "Beta", Status: domain.ProjectOnHold})

	out := Generate(s, weekOpts(), English)
	assert.Contains(t, out, "### Projects\n- Alpha (active) 2024-01-01 → 2024-03-31\n- Beta (on_hold)\n")

	opts := weekOpts()
	opts.ProjectIDs = []string{"p2"}
	r, err := Build(s, opts)
	require.NoError(t, err)
	require.Len(t, r.Projects, 1)
	assert.Equal(t, "Beta", r.Projects[0].Name)

	out = Generate(s, weekOpts(), Japanese)
	assert.Contains(t, out, "### プロジェクト\n- Alpha (active)")
}

func TestBuild_MissingPeriod(t *testing.T) {
	_, err := Build(sampleState(), Options{To: d("2024-01-07")})
	var oe *OptionsError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "from", oe.Field)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestBuild_DoesNotMutateState(t *testing.T) {
	s := sampleState()
	before := sampleState()
	_, err := Build(s, weekOpts())
	require.NoError(t, err)
	assert.Equal(t, before, s)
}

func TestBuild_NextStepsCapped(t *testing.T) {
	s := domain.NewAppState()
	for i := 0; i < 8; i++ {
		s.Tasks = append(s.Tasks, task(string(rune('a'+i)), "", "t", "2024-01-01", "2024-01-31", 10, domain.TaskInProgress))
	}
	r, err := Build(s, weekOpts())
	require.NoError(t, err)
	assert.Len(t, r.InProgress, 8)
	assert.Len(t, r.NextSteps, MaxNextSteps)
}

func TestGenerate_PopulatedSectionsAndAdhocPlaceholder(t *testing.T) {
	out := Generate(sampleState(), weekOpts(), English)

	assert.Contains(t, out, "## Progress report for Jan 1 – Jan 7\n")
	assert.Contains(t, out, "### Completed\n- [Alpha] Design\n")
	assert.Contains(t, out, "### In progress\n- [Alpha] Build (40%)\n  - third\n- [Unclassified] Vendor sync (20%)\n")
	assert.Contains(t, out, "### Delayed / at risk\n- [Unclassified] Vendor sync (20%, due 2024-01-04, 3 days late)\n  - waiting on vendor\n")
	assert.Contains(t, out, "### Ad-hoc tasks\n- None\n")
	assert.Contains(t, out, "- 2024-01-05 [Alpha] Build: third (1.5h)\n")
	assert.Contains(t, out, "- [Alpha] Build: continue (60% remaining)\n")
	assert.NotContains(t, out, "outside")
}

func TestRender_SectionOrder(t *testing.T) {
	out := Generate(sampleState(), weekOpts(), English)
	headers := []string{
		English.Projects, English.Completed, English.InProgress, English.Delayed,
		English.Adhoc, English.WorkLogs, English.NextSteps,
	}
	last := -1
	for _, h := range headers {
		i := strings.Index(out, h)
		require.NotEqual(t, -1, i, h)
		assert.Greater(t, i, last, h)
		last = i
	}
}

func TestRender_EmptyStateKeepsEveryHeader(t *testing.T) {
	out := Generate(domain.NewAppState(), weekOpts(), English)
	for _, h := range []string{English.Projects, English.Completed, English.InProgress, English.Delayed, English.Adhoc, English.WorkLogs} {
		assert.Contains(t, out, h+"\n"+English.None+"\n")
	}
	assert.Contains(t, out, English.NextSteps+"\n"+English.NoNextSteps+"\n")
}

func TestRender_OptionalSectionsOmittedWhenDisabled(t *testing.T) {
	opts := weekOpts()
	opts.IncludeAdhoc = false
	opts.IncludeWorkLogs = false
	out := Generate(sampleState(), opts, English)
	assert.NotContains(t, out, English.Adhoc)
	assert.NotContains(t, out, English.WorkLogs)
	assert.Contains(t, out, English.NextSteps)
}

func TestRender_AdhocAndDeletedTaskLog(t *testing.T) {
	s := sampleState()
	s.AdhocTasks = []domain.AdhocTask{
		{ID: "a1", Date: d("2024-01-04"), Title: "Support call", Detail: "customer X", Hours: domain.Float64Ptr(2)},
		{ID: "a2", Date: d("2024-01-09"), Title: "Next week"},
	}
	s.WorkLogs = append(s.WorkLogs, domain.WorkLog{ID: "w9", TaskID: "removed", Date: d("2024-01-02"), Note: "orphan"})

	out := Generate(s, weekOpts(), English)
	assert.Contains(t, out, "### Ad-hoc tasks\n- 2024-01-04 Support call (2h)\n  - customer X\n")
	assert.NotContains(t, out, "Next week")
	assert.Contains(t, out, "- 2024-01-02 [Unclassified] Deleted task: orphan\n")
}

func TestRender_SingleDayTitle(t *testing.T) {
	opts := weekOpts()
	opts.From = d("2024-01-05")
	opts.To = d("2024-01-05")
	out := Generate(sampleState(), opts, Japanese)
	assert.True(t, strings.HasPrefix(out, "## 1月5日の進捗報告\n"), out)
}

func TestRender_Japanese(t *testing.T) {
	out := Generate(sampleState(), weekOpts(), Japanese)
	assert.Contains(t, out, "## 1月1日〜1月7日の進捗報告\n")
	assert.Contains(t, out, "### 一時タスク/その他\n- なし\n")
	assert.Contains(t, out, "[未分類] Vendor sync (20%, 期限: 2024-01-04, 3日超過)")
	assert.Contains(t, out, "- [Alpha] Buildの継続 (残60%)\n")
}

func TestGenerate_ErrorSection(t *testing.T) {
	out := Generate(sampleState(), Options{}, English)
	assert.True(t, strings.HasPrefix(out, English.Error+"\n- "), out)
	assert.Contains(t, out, "from")
}

func TestDefaultOptions(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC) // Wednesday
	opts := DefaultOptions(now)
	assert.Equal(t, "2024-01-08", opts.From.String())
	assert.Equal(t, "2024-01-14", opts.To.String())
	assert.Equal(t, "2024-01-10", opts.Today.String())
	assert.True(t, opts.IncludeAdhoc)
	assert.True(t, opts.IncludeWorkLogs)
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, "ja", LabelsFor("JA").Locale)
	assert.Equal(t, "ja", LabelsFor("ja-JP").Locale)
	assert.Equal(t, "ja", LabelsFor("jp").Locale)
	assert.Equal(t, "en", LabelsFor("fr").Locale)
	assert.Equal(t, "en", LabelsFor("").Locale)
	assert.Equal(t, "en", LabelsFor("not a tag!").Locale)
}
