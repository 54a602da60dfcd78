package cli

import (
	"strings"

	"github.com/alexanderramin/samplan/internal/cli/formatter"
	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type scheduleKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

var scheduleKeys = scheduleKeyMap{
	Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next phase")),
	Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev phase")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// scheduleView pages through a schedule one phase at a time.
type scheduleView struct {
	resp   *contract.ScheduleResponse
	phase  int
	vp     viewport.Model
	width  int
	height int
}

func newScheduleView(resp *contract.ScheduleResponse) scheduleView {
	vp := viewport.New(100, 20)
	m := scheduleView{resp: resp, vp: vp, width: 100, height: 24}
	m.refresh()
	return m
}

func (m *scheduleView) refresh() {
	if len(m.resp.Phases) == 0 {
		m.vp.SetContent(formatter.Dim("No phases."))
		return
	}
	m.vp.SetContent(formatter.FormatPhaseTable(m.resp.Phases[m.phase]))
	m.vp.GotoTop()
}

func (m scheduleView) Init() tea.Cmd { return nil }

func (m scheduleView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-4, 1)
		return m, nil

	case tea.KeyMsg:
		n := len(m.resp.Phases)
		switch {
		case key.Matches(msg, scheduleKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, scheduleKeys.Next) && n > 0:
			m.phase = (m.phase + 1) % n
			m.refresh()
			return m, nil
		case key.Matches(msg, scheduleKeys.Prev) && n > 0:
			m.phase = (m.phase + n - 1) % n
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m scheduleView) View() string {
	var b strings.Builder

	title := "Schedule"
	if m.resp.Project != nil {
		title = m.resp.Project.ShortID + "  " + m.resp.Project.Name
	}
	b.WriteString(formatter.StyleHeader.Render(title) + formatter.Dim("  ends "+m.resp.EndDate.String()) + "\n")

	tabs := make([]string, 0, len(m.resp.Phases))
	for i, p := range m.resp.Phases {
		label := " " + string(p.Type) + " "
		if i == m.phase {
			label = formatter.StyleHeader.Render(label)
		} else {
			label = formatter.Dim(label)
		}
		tabs = append(tabs, label)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n")
	if len(m.resp.Phases) > 0 {
		b.WriteString(formatter.Dim(formatter.PhaseTitle(m.resp.Phases[m.phase])) + "\n")
	}

	b.WriteString(m.vp.View() + "\n")
	b.WriteString(formatter.Dim("tab/shift+tab phase · ↑/↓ scroll · q quit"))
	return b.String()
}

func runScheduleView(cmd *cobra.Command, resp *contract.ScheduleResponse) error {
	p := tea.NewProgram(newScheduleView(resp),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(cmd.Context()),
	)
	_, err := p.Run()
	return err
}
