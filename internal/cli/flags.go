package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/spf13/pflag"
)

// durationsValue parses --durations prepare=3,connect=5,realize=10,run=3.
// Phases left out keep their current value.
type durationsValue struct {
	d *domain.PhaseDurations
}

var _ pflag.Value = (*durationsValue)(nil)

func newDurationsValue(d *domain.PhaseDurations) *durationsValue {
	return &durationsValue{d: d}
}

func (v *durationsValue) String() string {
	if v.d == nil {
		return ""
	}
	return v.d.String()
}

func (v *durationsValue) Set(s string) error {
	next := *v.d
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, days, ok := strings.Cut(part, "=")
		if !ok {
			return fmt.Errorf("%q: expected phase=days", part)
		}
		phase, err := domain.ParsePhaseType(name)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(days))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: %q is not a positive number of days", phase, days)
		}
		next.Set(phase, n)
	}
	*v.d = next
	return nil
}

func (v *durationsValue) Type() string { return "durations" }

// dateValue parses a YYYY-MM-DD flag into a domain.Date.
type dateValue struct {
	d *domain.Date
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(d *domain.Date) *dateValue {
	return &dateValue{d: d}
}

func (v *dateValue) String() string {
	if v.d == nil || v.d.IsZero() {
		return ""
	}
	return v.d.String()
}

func (v *dateValue) Set(s string) error {
	d, err := domain.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v *dateValue) Type() string { return "date" }
