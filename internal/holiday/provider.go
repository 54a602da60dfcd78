// Package holiday supplies non-working calendar days and the lookup set the
// working-day calculator consumes.
package holiday

import (
	"sort"
	"time"

	"github.com/alexanderramin/samplan/internal/domain"
)

// Provider computes the holidays for a year. Implementations are pure: every
// call returns a fresh slice.
type Provider interface {
	HolidaysForYear(year int) []domain.Holiday
}

type fixedHoliday struct {
	month time.Month
	day   int
	name  string
}

// peruFixed are the national holidays that fall on the same date every year.
var peruFixed = []fixedHoliday{
	{time.January, 1, "Año Nuevo"},
	{time.May, 1, "Día del Trabajo"},
	{time.June, 7, "Batalla de Arica y Día de la Bandera"},
	{time.June, 29, "San Pedro y San Pablo"},
	{time.July, 23, "Día de la Fuerza Aérea del Perú"},
	{time.July, 28, "Fiestas Patrias"},
	{time.July, 29, "Fiestas Patrias"},
	{time.August, 6, "Batalla de Junín"},
	{time.August, 30, "Santa Rosa de Lima"},
	{time.October, 8, "Combate de Angamos"},
	{time.November, 1, "Día de Todos los Santos"},
	{time.December, 8, "Inmaculada Concepción"},
	{time.December, 9, "Batalla de Ayacucho"},
	{time.December, 25, "Navidad"},
}

// PeruProvider yields Peru's national holidays, including Holy Thursday and
// Good Friday computed from Easter.
type PeruProvider struct{}

func (PeruProvider) HolidaysForYear(year int) []domain.Holiday {
	out := make([]domain.Holiday, 0, len(peruFixed)+2)
	for _, f := range peruFixed {
		out = append(out, domain.Holiday{
			Date:      domain.NewDate(year, f.month, f.day),
			Name:      f.name,
			Recurring: true,
		})
	}

	easter := Easter(year)
	out = append(out,
		domain.Holiday{Date: easter.AddDays(-3), Name: "Jueves Santo"},
		domain.Holiday{Date: easter.AddDays(-2), Name: "Viernes Santo"},
	)

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Easter returns Easter Sunday for a Gregorian year using the anonymous
// (Meeus/Jones/Butcher) computus.
func Easter(year int) domain.Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return domain.NewDate(year, time.Month(month), day)
}

// YearWindow returns the years whose holidays a schedule anchored at kickoff
// may touch: the kickoff year and one on either side.
func YearWindow(kickoff domain.Date) []int {
	y := kickoff.Year()
	return []int{y - 1, y, y + 1}
}
