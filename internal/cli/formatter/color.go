package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/samplan/internal/domain"
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

// VarianceColor returns the style for a variance classification.
func VarianceColor(v domain.VarianceStatus) lipgloss.Style {
	switch v {
	case domain.VarianceCritical:
		return StyleRed
	case domain.VarianceBehind:
		return StyleYellow
	case domain.VarianceOnTrack:
		return StyleGreen
	case domain.VarianceAhead:
		return StyleBlue
	default:
		return StyleDim
	}
}

// VarianceIndicator renders a dot and the label, e.g. "● Behind schedule".
func VarianceIndicator(v domain.VarianceStatus, label string) string {
	if label == "" {
		label = strings.ToUpper(string(v))
	}
	return VarianceColor(v).Render("● " + label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
