package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
)

func FormatBlockers(blockers []*domain.BlockerPeriod) string {
	if len(blockers) == 0 {
		return Dim("No blockers recorded.") + "\n"
	}
	rows := make([][]string, 0, len(blockers))
	for _, b := range blockers {
		state := StyleRed.Render("open")
		switch {
		case b.Applied:
			state = StyleDim.Render("applied")
		case b.Resolved:
			state = StyleYellow.Render("resolved")
		}
		impact := Dim("--")
		if b.ImpactDays != nil {
			impact = fmt.Sprintf("%dd", *b.ImpactDays)
		}
		rows = append(rows, []string{
			TruncID(b.ID),
			string(b.Kind),
			b.StartDate.String(),
			DateCell(b.EndDate),
			impact,
			state,
			b.Reason,
		})
	}
	return RenderTable([]string{"ID", "KIND", "START", "END", "IMPACT", "STATE", "REASON"}, rows)
}

func FormatResolveResult(r *contract.ResolveBlockerResult) string {
	if r.AppliedDays == 0 {
		return "Blocker resolved; schedule unchanged.\n"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Blocker resolved; shifted %s by %s working day(s).\n",
		Bold(fmt.Sprintf("%d activities", len(r.Shifted))), StyleYellow.Render(fmt.Sprint(r.AppliedDays))))
	if len(r.Shifted) > 0 {
		b.WriteString(Dim("  "+strings.Join(r.Shifted, " ")) + "\n")
	}
	return b.String()
}
