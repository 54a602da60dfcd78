package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a percentage as a bar like [████░░░░]  45%.
// Green from 67%, yellow from 33%, red below.
func RenderProgress(pct, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 33:
		style = StyleRed
	case pct < 67:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}
