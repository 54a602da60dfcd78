package holiday

import (
	"sort"

	"github.com/alexanderramin/samplan/internal/domain"
)

// Set is a calendar-day keyed holiday lookup. A nil Set is valid and empty,
// which is how missing holiday data degrades: no holidays, no failure.
type Set map[domain.Date]string

// NewSet builds a Set; later duplicates of a date are ignored.
func NewSet(holidays ...domain.Holiday) Set {
	s := make(Set, len(holidays))
	for _, h := range holidays {
		s.Add(h.Date, h.Name)
	}
	return s
}

// FromProvider collects a provider's holidays for every year given.
func FromProvider(p Provider, years ...int) Set {
	s := make(Set)
	for _, y := range years {
		for _, h := range p.HolidaysForYear(y) {
			s.Add(h.Date, h.Name)
		}
	}
	return s
}

// Add registers date unless it is already present.
func (s Set) Add(date domain.Date, name string) {
	if _, ok := s[date]; ok {
		return
	}
	s[date] = name
}

func (s Set) Contains(date domain.Date) bool {
	_, ok := s[date]
	return ok
}

// Name returns the holiday name for date, or "".
func (s Set) Name(date domain.Date) string { return s[date] }

func (s Set) Len() int { return len(s) }

// Dates returns the holidays in ascending order.
func (s Set) Dates() []domain.Date {
	out := make([]domain.Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Years reports which of the requested years have at least one holiday.
func (s Set) Years() map[int]bool {
	years := make(map[int]bool)
	for d := range s {
		years[d.Year()] = true
	}
	return years
}
