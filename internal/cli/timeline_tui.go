package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/cli/formatter"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type timelineKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	StartLeft  key.Binding
	StartRight key.Binding
	EndLeft    key.Binding
	EndRight   key.Binding
	Apply      key.Binding
	Cancel     key.Binding
	Zoom       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newTimelineKeyMap() timelineKeyMap {
	return timelineKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev task")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next task")),
		MoveLeft:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move earlier")),
		MoveRight:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move later")),
		StartLeft:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "start earlier")),
		StartRight: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "start later")),
		EndLeft:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "end earlier")),
		EndRight:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "end later")),
		Apply:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
		Zoom:       key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "day/week")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timelineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.MoveLeft, k.MoveRight, k.Apply, k.Cancel, k.Help, k.Quit}
}

func (k timelineKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.MoveLeft, k.MoveRight, k.StartLeft, k.StartRight, k.EndLeft, k.EndRight},
		{k.Apply, k.Cancel, k.Zoom},
		{k.Help, k.Quit},
	}
}

type timelineLoadedMsg struct {
	tasks []domain.Task
	today calendar.Date
	err   error
}

type draftAppliedMsg struct {
	task *domain.Task
	err  error
}

type prefsSavedMsg struct{ err error }

// pointerDrag is a mouse gesture in progress. Deltas are measured from the
// press column.
type pointerDrag struct {
	pressX    int
	cellWidth int
	unitDays  int
}

const unsavedEditStatus = "Unsaved edit: enter to save, esc to discard."

// timelineModel is the interactive Gantt view. Edits accumulate in a
// DragSession and only reach storage on enter.
type timelineModel struct {
	app        *App
	projectIDs []string
	opts       formatter.GanttOptions
	keys       timelineKeyMap
	help       help.Model
	width      int

	loading bool
	err     error
	today   calendar.Date
	// tasks holds the stored tasks in planned start order.
	tasks    []domain.Task
	selected string
	session  *timeline.DragSession
	pointer  *pointerDrag
	status   string
}

func newTimelineModel(app *App, projectIDs []string, opts formatter.GanttOptions) timelineModel {
	return timelineModel{
		app:        app,
		projectIDs: projectIDs,
		opts:       opts,
		keys:       newTimelineKeyMap(),
		help:       help.New(),
		loading:    true,
	}
}

func (m timelineModel) Init() tea.Cmd {
	return m.load()
}

func (m timelineModel) load() tea.Cmd {
	app := m.app
	ids := m.projectIDs
	return func() tea.Msg {
		state, err := app.State.Snapshot(context.Background())
		if err != nil {
			return timelineLoadedMsg{err: err}
		}
		return timelineLoadedMsg{
			tasks: timeline.FilterByProjects(state.Tasks, ids),
			today: app.today(),
		}
	}
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case timelineLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.today = msg.today
		m.setTasks(msg.tasks)
		return m, nil

	case draftAppliedMsg:
		if msg.err != nil {
			m.status = "Save failed: " + msg.err.Error()
			return m, nil
		}
		for i := range m.tasks {
			if m.tasks[i].ID == msg.task.ID {
				m.tasks[i] = *msg.task
			}
		}
		m.session = nil
		m.setTasks(m.tasks)
		m.status = fmt.Sprintf("Saved %s: %s → %s", msg.task.Name, msg.task.PlannedStart, msg.task.PlannedEnd)
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.status = "Saving zoom failed: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Zoom):
		return m.toggleZoom()
	}
	if m.loading || m.err != nil || len(m.tasks) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.step(-1)
	case key.Matches(msg, m.keys.Down):
		m.step(1)
	case key.Matches(msg, m.keys.MoveLeft):
		m.nudge(timeline.DragMove, -1)
	case key.Matches(msg, m.keys.MoveRight):
		m.nudge(timeline.DragMove, 1)
	case key.Matches(msg, m.keys.StartLeft):
		m.nudge(timeline.DragResizeStart, -1)
	case key.Matches(msg, m.keys.StartRight):
		m.nudge(timeline.DragResizeStart, 1)
	case key.Matches(msg, m.keys.EndLeft):
		m.nudge(timeline.DragResizeEnd, -1)
	case key.Matches(msg, m.keys.EndRight):
		m.nudge(timeline.DragResizeEnd, 1)
	case key.Matches(msg, m.keys.Cancel):
		if m.session != nil {
			m.session = nil
			m.pointer = nil
			m.status = "Edit discarded."
		}
	case key.Matches(msg, m.keys.Apply):
		return m, m.applyDraft()
	}
	return m, nil
}

// handleMouse drags bars with the left button. The ends of a bar resize it
// and the middle moves it. Release saves the draft unless the pointer came
// back to where it was pressed.
func (m timelineModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.loading || m.err != nil || len(m.tasks) == 0 {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.press(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		if m.pointer != nil {
			m.dragTo(msg.X)
		}
	case tea.MouseActionRelease:
		if m.pointer != nil {
			m.dragTo(msg.X)
			m.pointer = nil
			if !m.session.Changed() {
				return m, nil
			}
			return m, m.applyDraft()
		}
	}
	return m, nil
}

func (m *timelineModel) press(x, y int) {
	chart, opts := m.chart()
	row := y - strings.Count(m.heading(), "\n") - 1
	col := x - opts.LabelWidth - 2
	if row < 0 || row >= len(chart.Bars) || col < 0 {
		return
	}
	col /= opts.DayWidth
	if opts.MaxColumns > 0 && col >= opts.MaxColumns {
		return
	}

	unit := 1
	if opts.Zoom == domain.ZoomWeek {
		unit = 7
	}
	bar := chart.Bars[row]
	first := bar.Offset / unit
	last := (bar.Offset + bar.Length - 1) / unit
	if col < first || col > last {
		return
	}
	if bar.Task.ID != m.selected && m.dirty() {
		m.status = unsavedEditStatus
		return
	}

	mode := timeline.DragMove
	switch {
	case first == last:
	case col == first:
		mode = timeline.DragResizeStart
	case col == last:
		mode = timeline.DragResizeEnd
	}
	// bar.Task already carries the draft when this bar is being edited.
	session, err := timeline.BeginDrag(bar.Task, mode)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.selected = bar.Task.ID
	m.session = session
	m.pointer = &pointerDrag{pressX: x, cellWidth: opts.DayWidth, unitDays: unit}
	m.status = ""
}

func (m *timelineModel) dragTo(x int) {
	days := timeline.DeltaFromPixels(float64(x-m.pointer.pressX), float64(m.pointer.cellWidth)) * m.pointer.unitDays
	m.status = draftStatus(m.session.Update(days))
}

func draftStatus(d timeline.DragDraft) string {
	return fmt.Sprintf("Draft %s → %s (%d days)", d.Start, d.End, calendar.DaysBetween(d.Start, d.End)+1)
}

// dirty reports whether the draft differs from the stored task.
func (m timelineModel) dirty() bool {
	if m.session == nil {
		return false
	}
	i := m.indexOf(m.selected)
	if i < 0 {
		return false
	}
	start, end := timeline.EffectiveInterval(m.tasks[i])
	d := m.session.Draft()
	return !d.Start.Equal(start) || !d.End.Equal(end)
}

// setTasks stores tasks sorted by planned start and keeps the selection on
// the same task when it still exists.
func (m *timelineModel) setTasks(tasks []domain.Task) {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, _ := timeline.EffectiveInterval(sorted[i])
		sj, _ := timeline.EffectiveInterval(sorted[j])
		return si.Before(sj)
	})
	m.tasks = sorted
	if m.indexOf(m.selected) < 0 {
		m.selected = ""
		if len(sorted) > 0 {
			m.selected = sorted[0].ID
		}
	}
}

func (m timelineModel) indexOf(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m *timelineModel) step(dir int) {
	if m.dirty() {
		m.status = unsavedEditStatus
		return
	}
	m.session = nil
	i := m.indexOf(m.selected) + dir
	if i < 0 || i >= len(m.tasks) {
		return
	}
	m.selected = m.tasks[i].ID
	m.status = ""
}

// nudge extends the current gesture by one day. Switching mode starts a
// new gesture from the current draft so earlier steps are kept.
func (m *timelineModel) nudge(mode timeline.DragMode, step int) {
	if m.session == nil || m.session.Mode() != mode {
		base := m.tasks[m.indexOf(m.selected)]
		if m.session != nil {
			base = m.session.Apply()
		}
		session, err := timeline.BeginDrag(base, mode)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.session = session
	}
	m.status = draftStatus(m.session.Nudge(step))
}

func (m timelineModel) applyDraft() tea.Cmd {
	if !m.dirty() {
		return nil
	}
	id := m.selected
	draft := m.session.Draft()
	tasks := m.app.Tasks
	return func() tea.Msg {
		t, err := tasks.ApplyDraft(context.Background(), id, draft)
		return draftAppliedMsg{task: t, err: err}
	}
}

func (m timelineModel) toggleZoom() (tea.Model, tea.Cmd) {
	if m.opts.Zoom == domain.ZoomWeek {
		m.opts.Zoom = domain.ZoomDay
	} else {
		m.opts.Zoom = domain.ZoomWeek
	}
	state := m.app.State
	zoom := m.opts.Zoom
	return m, func() tea.Msg {
		ctx := context.Background()
		prefs, err := state.Preferences(ctx)
		if err != nil {
			return prefsSavedMsg{err: err}
		}
		prefs.GanttZoom = zoom
		return prefsSavedMsg{err: state.SavePreferences(ctx, prefs)}
	}
}

// displayTasks returns the stored tasks with the draft substituted for the
// task being edited.
func (m timelineModel) displayTasks() []domain.Task {
	out := make([]domain.Task, len(m.tasks))
	copy(out, m.tasks)
	if m.session != nil {
		if i := m.indexOf(m.selected); i >= 0 {
			out[i] = m.session.Apply()
		}
	}
	return out
}

// chart lays out the displayed tasks and resolves the grid options the
// renderer will use, so mouse hits map onto the same cells.
func (m timelineModel) chart() (timeline.Chart, formatter.GanttOptions) {
	tasks := m.displayTasks()
	bounds := timeline.Bounds(tasks, m.today, chartPadBefore, chartPadAfter)
	chart := timeline.Layout(tasks, bounds, m.today)

	opts := m.opts
	opts.Selected = m.selected
	if opts.LabelWidth <= 0 {
		opts.LabelWidth = 24
	}
	if opts.DayWidth <= 0 {
		opts.DayWidth = 3
	}
	if m.width > 0 {
		opts.MaxColumns = max(1, (m.width-opts.LabelWidth-2)/opts.DayWidth)
	}
	return chart, opts
}

// heading is everything above the grid's date row.
func (m timelineModel) heading() string {
	return formatter.Header("Timeline") + "  " +
		formatter.FormatSummary(timeline.Summarize(m.tasks, m.today)) + "\n\n"
}

func (m timelineModel) View() string {
	if m.loading {
		return "Loading timeline..."
	}
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n"
	}

	chart, opts := m.chart()

	var b strings.Builder
	b.WriteString(m.heading())
	b.WriteString(formatter.RenderGantt(chart, opts))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
