package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TaskStatusStyle picks the bar and pill color for a task. Delayed wins
// over the stored status.
func TaskStatusStyle(status domain.TaskStatus, delayed bool) lipgloss.Style {
	if delayed {
		return StyleRed
	}
	switch status {
	case domain.TaskCompleted:
		return StyleGreen
	case domain.TaskInProgress:
		return StyleBlue
	case domain.TaskOnHold:
		return StyleYellow
	default:
		return StyleDim
	}
}

func TaskStatusPill(status domain.TaskStatus) string {
	style := TaskStatusStyle(status, false)
	switch status {
	case domain.TaskNotStarted:
		return style.Render("○ Not started")
	case domain.TaskInProgress:
		return style.Render("● In progress")
	case domain.TaskCompleted:
		return style.Render("✔ Completed")
	case domain.TaskOnHold:
		return style.Render("◌ On hold")
	default:
		return StyleDim.Render(string(status))
	}
}

func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectPlanned:
		return StyleBlue.Render("○ Planned")
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("◌ On hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("high")
	case domain.PriorityMedium:
		return StyleYellow.Render("medium")
	case domain.PriorityLow:
		return StyleDim.Render("low")
	default:
		return StyleDim.Render("--")
	}
}

// Header renders an upper-cased section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
