package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
)

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "CLIENT", "KICKOFF", "STATUS"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		client := p.Client
		if client == "" {
			client = Dim("--")
		}
		rows = append(rows, []string{
			StyleGreen.Render(p.DisplayID()),
			Bold(p.Name),
			StylePurple.Render(client),
			p.KickoffDate.String(),
			StatusPill(p.Status),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatSchedule renders a dated schedule phase by phase.
func FormatSchedule(resp *contract.ScheduleResponse) string {
	var b strings.Builder

	title := "Schedule preview"
	if resp.Project != nil {
		title = fmt.Sprintf("%s  %s", resp.Project.ShortID, resp.Project.Name)
		if resp.Project.Client != "" {
			b.WriteString(Dim("Client   ") + StylePurple.Render(resp.Project.Client) + "\n")
		}
	}
	b.WriteString(Dim("Kickoff  ") + resp.Kickoff.String() + "\n")
	b.WriteString(Dim("End      ") + Bold(resp.EndDate.String()) + "\n")

	for _, p := range resp.Phases {
		b.WriteString("\n")
		b.WriteString(Header(PhaseTitle(p)) + "\n")
		b.WriteString(FormatPhaseTable(p))
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\n" + Warnings(resp.Warnings))
	}
	return RenderBox(title, b.String())
}

// PhaseTitle names a phase with its span.
func PhaseTitle(p contract.PhaseView) string {
	return fmt.Sprintf("%s  %s → %s", p.Type, plainDate(p.StartDate), plainDate(p.EndDate))
}

// FormatPhaseTable renders one phase's activities.
func FormatPhaseTable(p contract.PhaseView) string {
	rows := make([][]string, 0, len(p.Activities))
	for _, a := range p.Activities {
		days := strconv.Itoa(a.DurationDays)
		if a.DurationDays == 0 {
			days = Dim("◆")
		}
		rows = append(rows, []string{
			a.Code,
			a.Name,
			days,
			DateCell(a.StartDate),
			DateCell(a.EndDate),
			ActivityStatusPill(a.Status),
			string(a.ParticipationType),
		})
	}
	return RenderTable([]string{"CODE", "ACTIVITY", "DAYS", "START", "END", "STATUS", "OWNER"}, rows)
}

func plainDate(d *domain.Date) string {
	if d == nil {
		return "--"
	}
	return d.String()
}
