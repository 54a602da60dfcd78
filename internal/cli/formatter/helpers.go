package formatter

import (
	"strings"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(title) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// DateCell renders an optional date, or a dim dash.
func DateCell(d *domain.Date) string {
	if d == nil || d.IsZero() {
		return Dim("--")
	}
	return d.String()
}

// StatusPill returns a colored indicator for a project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectClosed:
		return StyleDim.Render("✔ Closed")
	default:
		return StyleDim.Render(string(status))
	}
}

// ActivityStatusPill returns a colored indicator for an activity status.
func ActivityStatusPill(status domain.ActivityStatus) string {
	switch status {
	case domain.ActivityPending:
		return StyleBlue.Render("○ Pending")
	case domain.ActivityInProgress:
		return StyleGreen.Render("● In progress")
	case domain.ActivityCompleted:
		return StyleDim.Render("✔ Done")
	case domain.ActivityBlocked:
		return StyleRed.Render("■ Blocked")
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Warnings renders warning lines, or nothing.
func Warnings(ws []string) string {
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range ws {
		b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
	}
	return b.String()
}
