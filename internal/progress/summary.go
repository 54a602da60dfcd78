package progress

import "github.com/alexanderramin/samplan/internal/domain"

// Summary is everything a project read needs about schedule health.
type Summary struct {
	StartDate         domain.Date
	EndDate           domain.Date
	ActualProgress    int
	EstimatedProgress int
	DelayedActivities int
	Variance          VarianceResult
	Phases            []PhaseSummary
}

type PhaseSummary struct {
	Type      domain.PhaseType
	Start     *domain.Date
	End       *domain.Date
	Total     int
	Completed int
	Delayed   int
	Progress  int
}

// Summarize computes the full read model for a project whose forward phases
// start at kickoff.
func Summarize(phases []domain.Phase, kickoff, today domain.Date, policy VariancePolicy) Summary {
	end := ProjectEndDate(phases, kickoff)
	actual := ActualProgress(phases)
	estimated := EstimatedProgress(kickoff, end, today)
	delayed := DelayedActivities(phases, today)

	s := Summary{
		StartDate:         kickoff,
		EndDate:           end,
		ActualProgress:    actual,
		EstimatedProgress: estimated,
		DelayedActivities: delayed,
		Variance:          Variance(estimated, actual, delayed, policy),
		Phases:            make([]PhaseSummary, 0, len(phases)),
	}
	for _, p := range phases {
		s.Phases = append(s.Phases, summarizePhase(p, today))
	}
	return s
}

func summarizePhase(p domain.Phase, today domain.Date) PhaseSummary {
	ps := PhaseSummary{Type: p.Type, Total: len(p.Activities)}
	for _, a := range p.Activities {
		if a.IsCompleted() {
			ps.Completed++
		}
		if IsDelayed(a, today) {
			ps.Delayed++
		}
		if a.StartDate != nil {
			if ps.Start == nil {
				ps.Start = a.StartDate.Ptr()
			} else {
				ps.Start = domain.MinDate(*ps.Start, *a.StartDate).Ptr()
			}
		}
		if a.EndDate != nil {
			if ps.End == nil {
				ps.End = a.EndDate.Ptr()
			} else {
				ps.End = domain.MaxDate(*ps.End, *a.EndDate).Ptr()
			}
		}
	}
	ps.Progress = percent(ps.Completed, ps.Total)
	return ps
}
