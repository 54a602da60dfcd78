package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/samplan/internal/contract"
)

const statusProgressBarWidth = 10

// FormatStatus renders the portfolio status table, the variance counts and
// any warnings.
func FormatStatus(resp *contract.StatusResponse) string {
	var b strings.Builder

	headers := []string{"ID", "NAME", "END", "ACTUAL", "EXPECTED", "DELAYED", "VARIANCE"}
	rows := make([][]string, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		delayed := fmt.Sprint(p.DelayedActivities)
		if p.DelayedActivities > 0 {
			delayed = StyleRed.Render(delayed)
		}
		rows = append(rows, []string{
			StyleGreen.Render(p.ShortID),
			Bold(p.Name),
			p.EndDate.String(),
			RenderProgress(p.ActualProgress, statusProgressBarWidth),
			fmt.Sprintf("%3d%%", p.EstimatedProgress),
			delayed,
			VarianceIndicator(p.Variance, p.VarianceLabel),
		})
	}
	if len(rows) == 0 {
		b.WriteString(Dim("No active projects.") + "\n")
	} else {
		b.WriteString(RenderTable(headers, rows))
	}

	s := resp.Summary
	b.WriteString("\n")
	b.WriteString(Dim("As of "+s.Today.String()) + "  ")
	b.WriteString(strings.Join([]string{
		StyleRed.Render(fmt.Sprintf("%d Critical", s.CountsCritical)),
		StyleYellow.Render(fmt.Sprintf("%d Behind", s.CountsBehind)),
		StyleGreen.Render(fmt.Sprintf("%d On track", s.CountsOnTrack)),
		StyleBlue.Render(fmt.Sprintf("%d Ahead", s.CountsAhead)),
	}, ", ") + "\n")

	if len(resp.Warnings) > 0 {
		b.WriteString("\n" + Warnings(resp.Warnings))
	}
	return RenderBox("Status", b.String())
}

// FormatProjectStatus renders one project with its per-phase breakdown.
func FormatProjectStatus(p contract.ProjectStatusView) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("VARIANCE"), VarianceIndicator(p.Variance, p.VarianceLabel)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("ACTUAL  "), RenderProgress(p.ActualProgress, statusProgressBarWidth)))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("EXPECTED"), RenderProgress(p.EstimatedProgress, statusProgressBarWidth)))
	b.WriteString(fmt.Sprintf("%s  %s → %s\n", Dim("SPAN    "), p.StartDate, p.EndDate))
	if p.OpenBlockers > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("BLOCKERS"), StyleRed.Render(fmt.Sprintf("%d open", p.OpenBlockers))))
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(p.Phases))
	for _, ph := range p.Phases {
		rows = append(rows, []string{
			string(ph.Type),
			DateCell(ph.StartDate),
			DateCell(ph.EndDate),
			fmt.Sprintf("%d/%d", ph.Completed, ph.Total),
			fmt.Sprint(ph.Delayed),
			RenderProgress(ph.Progress, statusProgressBarWidth),
		})
	}
	b.WriteString(RenderTable([]string{"PHASE", "START", "END", "DONE", "DELAYED", "PROGRESS"}, rows))
	return RenderBox(p.ShortID+"  "+p.Name, b.String())
}
