package timeline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// DragMode says which endpoint(s) of a bar an edit moves.
type DragMode string

const (
	DragMove        DragMode = "move"
	DragResizeStart DragMode = "resize-start"
	DragResizeEnd   DragMode = "resize-end"
)

// ErrUnknownDragMode is returned for a mode outside the three above.
var ErrUnknownDragMode = errors.New("unknown drag mode")

// ParseDragMode accepts the canonical names plus the handle aliases
// start/left and end/right.
func ParseDragMode(s string) (DragMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move":
		return DragMove, nil
	case "resize-start", "start", "resize-left", "left":
		return DragResizeStart, nil
	case "resize-end", "end", "resize-right", "right":
		return DragResizeEnd, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDragMode, s)
}

// DragDraft is a candidate interval produced during a drag.
type DragDraft struct {
	Start calendar.Date
	End   calendar.Date
}

// ResolveDragDates computes the draft interval for a cumulative delta
// applied to the task's original dates. It depends only on the task and
// delta, so repeated calls with the same delta agree and delta 0 returns
// the original dates. The output always satisfies Start <= End.
func ResolveDragDates(t domain.Task, deltaDays int, mode DragMode) (DragDraft, error) {
	start, end := EffectiveInterval(t)

	switch mode {
	case DragMove:
		return DragDraft{
			Start: calendar.AddDays(start, deltaDays),
			End:   calendar.AddDays(end, deltaDays),
		}, nil

	case DragResizeStart:
		newStart := calendar.AddDays(start, deltaDays)
		if newStart.After(end) {
			newStart = end
		}
		return DragDraft{Start: newStart, End: end}, nil

	case DragResizeEnd:
		newEnd := calendar.AddDays(end, deltaDays)
		if newEnd.Before(start) {
			newEnd = start
		}
		return DragDraft{Start: start, End: newEnd}, nil
	}

	return DragDraft{}, fmt.Errorf("%w: %q", ErrUnknownDragMode, mode)
}

// DeltaFromPixels converts a horizontal pointer offset to whole days,
// rounding half away from zero. A non-positive dayWidth yields 0.
func DeltaFromPixels(dx float64, dayWidth float64) int {
	if dayWidth <= 0 {
		return 0
	}
	return int(math.Round(dx / dayWidth))
}

// DragSession tracks one gesture. It keeps the pre-gesture snapshot and
// recomputes every draft from it, never from the previous draft.
type DragSession struct {
	original domain.Task
	mode     DragMode
	delta    int
	draft    DragDraft
}

// BeginDrag snapshots t and starts a gesture in the given mode.
func BeginDrag(t domain.Task, mode DragMode) (*DragSession, error) {
	draft, err := ResolveDragDates(t, 0, mode)
	if err != nil {
		return nil, err
	}
	snapshot := t
	snapshot.DependsOn = append([]string(nil), t.DependsOn...)
	return &DragSession{original: snapshot, mode: mode, draft: draft}, nil
}

// Update sets the cumulative delta and returns the resulting draft.
func (s *DragSession) Update(deltaDays int) DragDraft {
	// Mode was validated in BeginDrag, so the error is unreachable.
	draft, _ := ResolveDragDates(s.original, deltaDays, s.mode)
	s.delta = deltaDays
	s.draft = draft
	return draft
}

// Nudge adds step to the cumulative delta.
func (s *DragSession) Nudge(step int) DragDraft {
	return s.Update(s.delta + step)
}

func (s *DragSession) Mode() DragMode        { return s.mode }
func (s *DragSession) Delta() int            { return s.delta }
func (s *DragSession) Draft() DragDraft      { return s.draft }
func (s *DragSession) Original() domain.Task { return s.original }

// Changed reports whether the current draft differs from the interval the
// gesture started from, which is the effective interval of the original.
func (s *DragSession) Changed() bool {
	start, end := EffectiveInterval(s.original)
	return !s.draft.Start.Equal(start) || !s.draft.End.Equal(end)
}

// Cancel discards the draft and returns the original dates.
func (s *DragSession) Cancel() DragDraft {
	return s.Update(0)
}

// Apply returns a copy of the original task carrying the draft dates.
func (s *DragSession) Apply() domain.Task {
	t := s.original
	t.PlannedStart = s.draft.Start
	t.PlannedEnd = s.draft.End
	return t
}
