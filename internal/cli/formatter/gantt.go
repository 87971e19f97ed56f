package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/timeline"
)

const (
	barDone    = "█"
	barPending = "▒"
	gridEmpty  = "·"
	todayMark  = "│"
)

// GanttOptions controls the chart grid.
type GanttOptions struct {
	// DayWidth is the cell width of one column.
	DayWidth int
	// Zoom week folds seven days into one column.
	Zoom       domain.GanttZoom
	LabelWidth int
	// Selected highlights one task row.
	Selected string
	// MaxColumns clips the grid on narrow terminals. Zero means no limit.
	MaxColumns int
}

func (o GanttOptions) withDefaults() GanttOptions {
	if o.DayWidth <= 0 {
		o.DayWidth = 3
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = 24
	}
	if o.Zoom == "" {
		o.Zoom = domain.ZoomDay
	}
	return o
}

func (o GanttOptions) unitDays() int {
	if o.Zoom == domain.ZoomWeek {
		return 7
	}
	return 1
}

// RenderGantt draws chart as a header row of dates followed by one bar per
// task. The filled share of each bar follows the task's progress.
func RenderGantt(chart timeline.Chart, opts GanttOptions) string {
	opts = opts.withDefaults()
	unit := opts.unitDays()

	columns := (len(chart.Days) + unit - 1) / unit
	if opts.MaxColumns > 0 && columns > opts.MaxColumns {
		columns = opts.MaxColumns
	}
	todayCol := -1
	if chart.Bounds.Contains(chart.Today) {
		todayCol = calendar.DaysBetween(chart.Bounds.From, chart.Today) / unit
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", opts.LabelWidth+2))
	for c := 0; c < columns; c++ {
		b.WriteString(columnLabel(chart.Bounds.From.AddDays(c*unit), opts, c == todayCol))
	}
	b.WriteString("\n")

	if len(chart.Bars) == 0 {
		b.WriteString(Dim("  No tasks in range.") + "\n")
		return b.String()
	}

	for _, bar := range chart.Bars {
		marker := "  "
		label := Truncate(bar.Task.Name, opts.LabelWidth)
		if bar.Task.ID == opts.Selected && opts.Selected != "" {
			marker = StyleHeader.Render("› ")
			label = StyleBold.Render(label)
		}
		b.WriteString(marker)
		b.WriteString(PadRight(label, opts.LabelWidth))

		first := bar.Offset / unit
		last := (bar.Offset + bar.Length - 1) / unit
		span := last - first + 1
		filled := bar.Task.Progress * span / 100
		style := TaskStatusStyle(bar.Task.Status, bar.Delayed)

		for c := 0; c < columns; c++ {
			switch {
			case c >= first && c <= last:
				glyph := barPending
				if c-first < filled {
					glyph = barDone
				}
				b.WriteString(style.Render(strings.Repeat(glyph, opts.DayWidth)))
			case c == todayCol:
				b.WriteString(StyleYellow.Render(centered(todayMark, opts.DayWidth)))
			default:
				b.WriteString(StyleDim.Render(centered(gridEmpty, opts.DayWidth)))
			}
		}
		if bar.Delayed {
			b.WriteString(" " + StyleRed.Render(fmt.Sprintf("+%dd", bar.Overdue)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// GanttLegend explains the bar glyphs.
func GanttLegend() string {
	return Dim(fmt.Sprintf("%s done  %s remaining  %s today  ", barDone, barPending, todayMark)) +
		StyleRed.Render("red") + Dim(" delayed")
}

func columnLabel(day calendar.Date, opts GanttOptions, today bool) string {
	var text string
	switch {
	case opts.Zoom == domain.ZoomWeek:
		text = fmt.Sprintf("%d/%d", int(day.Month()), day.Day())
	case day.Day() == 1 || opts.DayWidth >= 3:
		text = fmt.Sprintf("%d", day.Day())
		if day.Day() == 1 && opts.DayWidth >= 4 {
			text = day.Time().Format("Jan")
		}
	default:
		text = ""
	}
	text = PadRight(Truncate(text, opts.DayWidth), opts.DayWidth)
	if today {
		return StyleYellow.Render(text)
	}
	if day.Weekday() == 0 || day.Weekday() == 6 {
		return StyleDim.Render(text)
	}
	return StyleFg.Render(text)
}

func centered(glyph string, width int) string {
	if width <= 1 {
		return glyph
	}
	left := (width - 1) / 2
	return strings.Repeat(" ", left) + glyph + strings.Repeat(" ", width-1-left)
}

// FormatSummary renders the headline counts shown above the chart.
func FormatSummary(s timeline.Summary) string {
	delayed := fmt.Sprintf("%d delayed", s.Delayed)
	if s.Delayed > 0 {
		delayed = StyleRed.Render(delayed)
	}
	return fmt.Sprintf("%d tasks  %d completed  %d due today  %s", s.Total, s.Completed, s.DueToday, delayed)
}
