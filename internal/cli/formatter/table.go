package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable aligns rows under headers by visible width, so styled cells
// line up. Short rows are padded with empty cells.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := 0; i < len(widths) && i < len(cells); i++ {
			if w := lipgloss.Width(cells[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(widths)-1 {
				b.WriteString(style(cell))
				break
			}
			b.WriteString(style(cell))
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	writeRow(rules, func(s string) string { return StyleDim.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
