package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/samplan/internal/cli/formatter"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// samplanHuhTheme returns a huh theme using the formatter palette.
func samplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// durationFields holds the form's text values, one per phase.
type durationFields map[domain.PhaseType]*string

func newDurationFields(d domain.PhaseDurations) durationFields {
	f := make(durationFields, len(domain.PhaseTypes))
	for _, p := range domain.PhaseTypes {
		s := strconv.Itoa(d.For(p))
		f[p] = &s
	}
	return f
}

// durations converts the fields back; call it after the form validated them.
func (f durationFields) durations() (domain.PhaseDurations, error) {
	var d domain.PhaseDurations
	for _, p := range domain.PhaseTypes {
		n, err := strconv.Atoi(strings.TrimSpace(*f[p]))
		if err != nil {
			return d, fmt.Errorf("%s: %w", p, err)
		}
		d.Set(p, n)
	}
	return d, d.Validate()
}

// durationsForm asks for the working days of each phase, prefilled with the
// current values.
func durationsForm(fields durationFields) *huh.Form {
	inputs := make([]huh.Field, 0, len(domain.PhaseTypes))
	for _, p := range domain.PhaseTypes {
		inputs = append(inputs, huh.NewInput().
			Title(fmt.Sprintf("%s (working days)", p)).
			Value(fields[p]).
			Validate(validatePositiveInt))
	}
	return huh.NewForm(huh.NewGroup(inputs...)).WithTheme(samplanHuhTheme()).WithShowHelp(false)
}

func confirmForm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(value),
		),
	).WithTheme(samplanHuhTheme()).WithShowHelp(false)
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be greater than 0")
	}
	return nil
}
