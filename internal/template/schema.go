package template

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/alexanderramin/samplan/internal/domain"
)

//go:embed sam.json
var samJSON []byte

// Template is a methodology catalog: one entry per SAM phase, each with its
// ordered activity templates.
type Template struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Version string          `json:"version"`
	Phases  []PhaseTemplate `json:"phases"`
}

type PhaseTemplate struct {
	Type       domain.PhaseType          `json:"type"`
	Activities []domain.ActivityTemplate `json:"activities"`
}

// Total is the sum of the phase's non-milestone durations.
func (p PhaseTemplate) Total() int {
	total := 0
	for _, a := range p.Activities {
		if a.DefaultDuration > 0 {
			total += a.DefaultDuration
		}
	}
	return total
}

// Phase returns the template for phase type t.
func (t Template) Phase(pt domain.PhaseType) (PhaseTemplate, bool) {
	for _, p := range t.Phases {
		if p.Type == pt {
			return p, true
		}
	}
	return PhaseTemplate{}, false
}

// Durations reports the per-phase totals of the catalog, which double as the
// default requested durations.
func (t Template) Durations() domain.PhaseDurations {
	var d domain.PhaseDurations
	for _, p := range t.Phases {
		d.Set(p.Type, p.Total())
	}
	return d
}

func (t Template) clone() Template {
	out := t
	out.Phases = make([]PhaseTemplate, len(t.Phases))
	for i, p := range t.Phases {
		out.Phases[i] = PhaseTemplate{
			Type:       p.Type,
			Activities: append([]domain.ActivityTemplate(nil), p.Activities...),
		}
	}
	return out
}

var loadBase = sync.OnceValues(func() (Template, error) {
	return Parse(samJSON)
})

// Base returns a copy of the built-in SAM catalog. Callers may modify the
// result freely.
func Base() Template {
	t, err := loadBase()
	if err != nil {
		panic(fmt.Sprintf("embedded SAM template: %v", err))
	}
	return t.clone()
}

// DefaultDurations returns the phase totals of the built-in catalog.
func DefaultDurations() domain.PhaseDurations {
	return Base().Durations()
}

// Parse decodes a catalog, orders phases by methodology and activities by
// their order field, and validates the result.
func Parse(data []byte) (Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("parsing template: %w", err)
	}
	sort.SliceStable(t.Phases, func(i, j int) bool {
		return t.Phases[i].Type.Order() < t.Phases[j].Type.Order()
	})
	for i := range t.Phases {
		acts := t.Phases[i].Activities
		sort.SliceStable(acts, func(a, b int) bool { return acts[a].Order < acts[b].Order })
	}
	if err := Validate(t); err != nil {
		return Template{}, err
	}
	return t, nil
}

// LoadFile reads a catalog in the same JSON format as the embedded one.
func LoadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, err
	}
	t, err := Parse(data)
	if err != nil {
		return Template{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
