package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Widths are measured on visible text so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(cell))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	sep := make([]string, cols)
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(sep, Dim)
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
