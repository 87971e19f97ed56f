package cli

import (
	"regexp"
	"testing"

	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// newTimelineDriver seeds the sample project and drains the initial load.
func newTimelineDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	seedSample(t, app)
	m := newTimelineModel(app, nil, formatter.GanttOptions{Zoom: domain.ZoomDay, DayWidth: 2})
	d := teatest.New(t, m, teatest.WithSize(160, 40))
	d.Init()
	return d
}

func model(d *teatest.Driver) timelineModel {
	return d.Model.(timelineModel)
}

// Grid geometry for newTimelineDriver: bars start on screen row 4, the grid
// starts after the 24-cell label and 2-cell marker, and each day is 2 cells.
// The chart begins two days before fixedNow.
const (
	firstBarRow = 4
	gridLeft    = 26
	cellWidth   = 2
)

// dayX is the screen column of the chart's day offset n.
func dayX(n int) int {
	return gridLeft + n*cellWidth
}

func TestTimelineTUI_LoadsAndSelectsFirstTask(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	m := model(d)
	require.Len(t, m.tasks, 3)
	assert.Equal(t, "t1", m.selected)

	view := stripANSI(d.View())
	assert.Contains(t, view, "› Design UX")
	assert.Contains(t, view, "3 tasks")
}

func TestTimelineTUI_Navigation(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.PressDown()
	d.PressKey('j')
	assert.Equal(t, "t3", model(d).selected)
	d.PressDown()
	assert.Equal(t, "t3", model(d).selected, "stays on the last row")
	d.PressKey('k')
	assert.Equal(t, "t2", model(d).selected)
}

func TestTimelineTUI_MoveAndApply(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.PressKeys("ll")
	assert.Contains(t, d.View(), "Draft 2024-01-12 → 2024-01-17")
	assert.Equal(t, "2024-01-10", getTask(t, app, "t1").PlannedStart.String(), "nothing stored before enter")

	d.PressEnter()
	task := getTask(t, app, "t1")
	assert.Equal(t, "2024-01-12", task.PlannedStart.String())
	assert.Equal(t, "2024-01-17", task.PlannedEnd.String())
	assert.Nil(t, model(d).session)
	assert.Contains(t, d.View(), "Saved Design UX")
}

func TestTimelineTUI_ModeSwitchKeepsEarlierSteps(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.PressKey('l') // move +1: 11..16
	d.PressKey(']') // end +1: 11..17
	d.PressKey('H') // start -1: 10..17
	d.PressEnter()

	task := getTask(t, app, "t1")
	assert.Equal(t, "2024-01-10", task.PlannedStart.String())
	assert.Equal(t, "2024-01-17", task.PlannedEnd.String())
}

func TestTimelineTUI_ResizeNeverInverts(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.PressKeys("[[[[[[[[[[")
	d.PressEnter()

	task := getTask(t, app, "t1")
	assert.Equal(t, "2024-01-10", task.PlannedStart.String())
	assert.Equal(t, "2024-01-10", task.PlannedEnd.String())
}

func TestTimelineTUI_EscDiscards(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.PressKeys("lll")
	d.PressEsc()
	assert.Nil(t, model(d).session)
	assert.Contains(t, d.View(), "Edit discarded.")

	d.PressEnter()
	assert.Equal(t, "2024-01-10", getTask(t, app, "t1").PlannedStart.String())
}

func TestTimelineTUI_UnsavedEditBlocksNavigation(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.PressKey('l')
	d.PressDown()
	assert.Equal(t, "t1", model(d).selected)
	assert.Contains(t, d.View(), "Unsaved edit")
}

func TestTimelineTUI_ZoomIsSaved(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.PressKey('z')
	assert.Equal(t, domain.ZoomWeek, model(d).opts.Zoom)

	prefs, err := app.State.Preferences(t.Context())
	require.NoError(t, err)
	assert.Equal(t, domain.ZoomWeek, prefs.GanttZoom)
}

func TestTimelineTUI_HelpAndQuit(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.PressKey('?')
	assert.Contains(t, d.View(), "end later")

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestTimelineTUI_MouseDragMovesBar(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	// t1 covers days 2..7; grab its middle and drag two days later.
	d.Drag(dayX(4), dayX(6), firstBarRow)

	task := getTask(t, app, "t1")
	assert.Equal(t, "2024-01-12", task.PlannedStart.String())
	assert.Equal(t, "2024-01-17", task.PlannedEnd.String())
	assert.Nil(t, model(d).pointer)
	assert.Contains(t, d.View(), "Saved Design UX")
}

func TestTimelineTUI_MouseDragRoundsToWholeDays(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.Mouse(tea.MouseActionPress, dayX(4), firstBarRow)
	d.Mouse(tea.MouseActionMotion, dayX(4)+3, firstBarRow)
	assert.Contains(t, d.View(), "Draft 2024-01-12 → 2024-01-17", "1.5 days rounds away from zero")
	d.Mouse(tea.MouseActionMotion, dayX(4)-1, firstBarRow)
	assert.Contains(t, d.View(), "Draft 2024-01-09 → 2024-01-14")
}

func TestTimelineTUI_MouseDragBarEndsResize(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.Drag(dayX(7), dayX(9), firstBarRow)
	task := getTask(t, app, "t1")
	assert.Equal(t, "2024-01-10", task.PlannedStart.String())
	assert.Equal(t, "2024-01-17", task.PlannedEnd.String())

	// Dragging the start handle past the end clamps to a one-day bar.
	d.Drag(dayX(2), dayX(20), firstBarRow)
	task = getTask(t, app, "t1")
	assert.Equal(t, "2024-01-17", task.PlannedStart.String())
	assert.Equal(t, "2024-01-17", task.PlannedEnd.String())
}

func TestTimelineTUI_ClickSelectsWithoutSaving(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	// t2 is the second row and covers days 8..17.
	d.Drag(dayX(12), dayX(12), firstBarRow+1)
	assert.Equal(t, "t2", model(d).selected)
	task := getTask(t, app, "t2")
	assert.Equal(t, "2024-01-16", task.PlannedStart.String())
	assert.Equal(t, "2024-01-25", task.PlannedEnd.String())
}

func TestTimelineTUI_MouseOutsideBarsIgnored(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.Mouse(tea.MouseActionPress, 5, firstBarRow)
	d.Mouse(tea.MouseActionPress, dayX(20), firstBarRow)
	d.Mouse(tea.MouseActionPress, dayX(4), 1)
	assert.Nil(t, model(d).session)
	assert.Nil(t, model(d).pointer)
}

func TestTimelineTUI_MousePressBlockedByUnsavedEdit(t *testing.T) {
	app := testApp(t)
	d := newTimelineDriver(t, app)

	d.PressKey('l')
	d.Mouse(tea.MouseActionPress, dayX(12), firstBarRow+1)
	assert.Equal(t, "t1", model(d).selected)
	assert.Contains(t, d.View(), "Unsaved edit")
}
