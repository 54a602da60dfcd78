package formatter

import (
	"fmt"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
)

func FormatHolidays(year int, hs []domain.Holiday) string {
	if len(hs) == 0 {
		return Dim(fmt.Sprintf("No holidays stored for %d.", year)) + "\n"
	}
	rows := make([][]string, 0, len(hs))
	for _, h := range hs {
		recurring := ""
		if h.Recurring {
			recurring = Dim("yearly")
		}
		rows = append(rows, []string{h.Date.String(), h.Date.Weekday().String()[:3], h.Name, recurring})
	}
	return RenderBox(fmt.Sprintf("Holidays %d", year), RenderTable([]string{"DATE", "DAY", "NAME", ""}, rows))
}

func FormatImportResult(r *contract.HolidayImportResult) string {
	return fmt.Sprintf("Imported %s holidays from %s (%s already present)\n",
		StyleGreen.Render(fmt.Sprint(r.Inserted)), r.Source, Dim(fmt.Sprint(r.Skipped)))
}
