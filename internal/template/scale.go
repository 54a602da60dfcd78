package template

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Scale returns a copy of base whose phase durations add up to the requested
// ones. Within a phase every non-milestone activity gets its exact share
// d*R/B rounded down, and the leftover days go to the largest fractional
// parts (earlier activities win ties). While the phase has at least as many
// days as activities, no activity is scaled down to zero. Milestones pass
// through unchanged. base itself is never modified.
func Scale(base Template, durations domain.PhaseDurations) (Template, error) {
	if err := durations.Validate(); err != nil {
		return Template{}, err
	}

	out := base.clone()
	for i := range out.Phases {
		p := &out.Phases[i]
		requested := durations.For(p.Type)
		if err := scalePhase(p, requested); err != nil {
			return Template{}, err
		}
		if got := p.Total(); got != requested {
			return Template{}, fmt.Errorf("%w: phase %s scaled to %d days, requested %d",
				domain.ErrConsistency, p.Type, got, requested)
		}
	}
	return out, nil
}

type share struct {
	idx       int
	days      int64
	remainder decimal.Decimal
}

func scalePhase(p *PhaseTemplate, requested int) error {
	baseTotal := p.Total()
	if baseTotal == 0 {
		return domain.NewInvalidInput("template", "phase %s has no activity with a positive duration", p.Type)
	}

	r := decimal.NewFromInt(int64(requested))
	b := decimal.NewFromInt(int64(baseTotal))

	var shares []share
	var assigned int64
	for i, a := range p.Activities {
		if a.DefaultDuration <= 0 {
			continue
		}
		quota := decimal.NewFromInt(int64(a.DefaultDuration)).Mul(r).Div(b)
		floor := quota.Floor()
		shares = append(shares, share{idx: i, days: floor.IntPart(), remainder: quota.Sub(floor)})
		assigned += floor.IntPart()
	}

	byRemainder := make([]int, len(shares))
	for i := range byRemainder {
		byRemainder[i] = i
	}
	sort.SliceStable(byRemainder, func(x, y int) bool {
		return shares[byRemainder[x]].remainder.GreaterThan(shares[byRemainder[y]].remainder)
	})
	for k := 0; int64(k) < int64(requested)-assigned; k++ {
		shares[byRemainder[k]].days++
	}

	if requested >= len(shares) {
		keepAtLeastOne(shares)
	}

	for _, s := range shares {
		p.Activities[s.idx].DefaultDuration = int(s.days)
	}
	return nil
}

// keepAtLeastOne lifts zero shares to one day, taking each day from the
// largest share (the later one on ties).
func keepAtLeastOne(shares []share) {
	for i := range shares {
		if shares[i].days > 0 {
			continue
		}
		donor := -1
		for j := range shares {
			if shares[j].days > 1 && (donor < 0 || shares[j].days >= shares[donor].days) {
				donor = j
			}
		}
		if donor < 0 {
			return
		}
		shares[donor].days--
		shares[i].days = 1
	}
}
