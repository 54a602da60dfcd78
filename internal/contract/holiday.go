package contract

import "github.com/alexanderramin/samplan/internal/domain"

type HolidayView struct {
	Date      domain.Date `json:"date"`
	Name      string      `json:"name"`
	Recurring bool        `json:"recurring"`
}

func NewHolidayViews(hs []domain.Holiday) []HolidayView {
	out := make([]HolidayView, 0, len(hs))
	for _, h := range hs {
		out = append(out, HolidayView{Date: h.Date, Name: h.Name, Recurring: h.Recurring})
	}
	return out
}

// HolidayImportResult counts rows written versus dates already present.
type HolidayImportResult struct {
	Source   string `json:"source"`
	Inserted int    `json:"inserted"`
	Skipped  int    `json:"skipped"`
}
