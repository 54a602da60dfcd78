package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/samplan/internal/domain"
)

// Convert transforms a validated HolidayFile into domain holidays sorted by
// date. Recurring holidays are repeated into every year in file.Years; a
// date produced twice keeps the first name seen.
// Call ValidateHolidayFile first; Convert assumes the file is valid.
func Convert(file *HolidayFile) ([]domain.Holiday, error) {
	now := time.Now().UTC()
	byDate := make(map[domain.Date]domain.Holiday)

	add := func(h domain.Holiday) {
		if _, ok := byDate[h.Date]; !ok {
			byDate[h.Date] = h
		}
	}

	for _, hi := range file.Holidays {
		d, err := domain.ParseDate(hi.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", hi.Date, err)
		}
		add(domain.Holiday{Date: d, Name: hi.Name, Recurring: hi.Recurring, CreatedAt: now})
		if !hi.Recurring {
			continue
		}
		for _, y := range file.Years {
			// Feb 29 only exists in leap years.
			moved := domain.NewDate(y, d.Month(), d.Day())
			if moved.Month() != d.Month() {
				continue
			}
			add(domain.Holiday{Date: moved, Name: hi.Name, Recurring: true, CreatedAt: now})
		}
	}

	out := make([]domain.Holiday, 0, len(byDate))
	for _, h := range byDate {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
