// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is executed and fed
// back until the model goes quiet, so tests can assert on View() without
// a running tea.Program.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds Cmd chains so a model that keeps scheduling work
// cannot hang a test.
const MaxDrainDepth = 64

// cmdTimeout skips Cmds that block on timers. Service calls against an
// in-memory database finish far inside it.
const cmdTimeout = 250 * time.Millisecond

type Driver struct {
	T     *testing.T
	Model tea.Model

	// Msgs records every message produced by a Cmd, in delivery order.
	Msgs []tea.Msg

	// Quitting is set once tea.Quit has been returned.
	Quitting bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call Init to run the model's startup Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init runs Model.Init and drains what it returns.
func (d *Driver) Init() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressKeys sends each rune of keys as its own key press.
func (d *Driver) PressKeys(keys string) {
	d.T.Helper()
	for _, r := range keys {
		d.PressKey(r)
	}
}

func (d *Driver) PressEnter() { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) PressUp()    { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) PressDown()  { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyDown}) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.Send(tea.KeyMsg{Type: tea.KeyCtrlC}) }

// Mouse sends a left-button event at cell (x, y).
func (d *Driver) Mouse(action tea.MouseAction, x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

// Drag presses at (fromX, y), moves one cell at a time to toX on the same
// row and releases there.
func (d *Driver) Drag(fromX, toX, y int) {
	d.T.Helper()
	d.Mouse(tea.MouseActionPress, fromX, y)
	step := 1
	if toX < fromX {
		step = -1
	}
	for x := fromX; x != toX; {
		x += step
		d.Mouse(tea.MouseActionMotion, x, y)
	}
	d.Mouse(tea.MouseActionRelease, toX, y)
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit %d reached", MaxDrainDepth)
		return
	}

	msg := run(cmd)
	if msg == nil {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Msgs = append(d.Msgs, msg)
		return
	}

	d.Msgs = append(d.Msgs, msg)
	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}

func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
