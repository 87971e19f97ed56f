package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded border, titled when title is set.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// TruncID returns the dimmed display prefix of an ID, or a dim "--".
func TruncID(id string) string {
	if strings.TrimSpace(id) == "" {
		return StyleDim.Render("--")
	}
	return StyleDim.Render(domain.ShortID(id))
}

// FormatHours renders an optional hour count such as 1.5h.
func FormatHours(h *float64) string {
	if h == nil {
		return Dim("--")
	}
	return strconv.FormatFloat(*h, 'f', -1, 64) + "h"
}

// Truncate cuts s to at most width visible cells, ending in an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// PadRight pads s with spaces to width visible cells.
func PadRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
