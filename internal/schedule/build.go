// Package schedule lays out the SAM phases of a project on the working-day
// calendar and shifts them when blockers resolve with an impact.
package schedule

import (
	"fmt"

	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/holiday"
	"github.com/alexanderramin/samplan/internal/template"
	"github.com/alexanderramin/samplan/internal/workday"
)

// Span is the inclusive date range of one dated activity.
type Span struct {
	Start domain.Date
	End   domain.Date
}

// Key identifies an activity across phases. Codes are only unique within a
// phase.
type Key struct {
	Phase domain.PhaseType
	Code  string
}

// Build scales base to durations and dates every activity. PREPARE is walked
// backward so that it ends the day before kickoff; the remaining phases run
// forward from kickoff. holidays should cover the kickoff year and one year
// on either side.
//
// Activities come back in catalog order, PENDIENTE, with no IDs.
func Build(kickoff domain.Date, durations domain.PhaseDurations, holidays holiday.Set, base template.Template) ([]domain.Phase, error) {
	if kickoff.IsZero() {
		return nil, domain.NewInvalidInput("kickoff_date", "is required")
	}
	scaled, err := template.Scale(base, durations)
	if err != nil {
		return nil, err
	}

	spans := make(map[Key]Span)

	var forward []template.PhaseTemplate
	for _, p := range scaled.Phases {
		if p.Type != domain.PhasePrepare {
			forward = append(forward, p)
			continue
		}
		back, err := BackwardPass(p, kickoff, holidays)
		if err != nil {
			return nil, err
		}
		for code, s := range back {
			spans[Key{p.Type, code}] = s
		}
	}

	fwd, _, err := ForwardPass(forward, kickoff, holidays)
	if err != nil {
		return nil, err
	}
	for k, s := range fwd {
		spans[k] = s
	}

	return emit(scaled, spans), nil
}

// BackwardPass dates a phase so that its last dated activity ends on
// kickoff-1 (whatever weekday that is). Each earlier activity ends the
// calendar day before its successor starts. Milestones are skipped and do not
// move the anchor. The result is keyed by activity code.
func BackwardPass(p template.PhaseTemplate, kickoff domain.Date, holidays holiday.Set) (map[string]Span, error) {
	spans := make(map[string]Span)
	anchor := kickoff.AddDays(-1)
	for i := len(p.Activities) - 1; i >= 0; i-- {
		a := p.Activities[i]
		if a.DefaultDuration == 0 {
			continue
		}
		start, err := workday.StartDate(anchor, a.DefaultDuration, holidays)
		if err != nil {
			return nil, fmt.Errorf("dating %s %s: %w", p.Type, a.Code, err)
		}
		spans[a.Code] = Span{Start: start, End: anchor}
		anchor = start.AddDays(-1)
	}
	return spans, nil
}

// ForwardPass dates phases in order starting at kickoff. Each dated activity
// starts the calendar day after the previous one ended. It also returns the
// cursor left after the last activity.
func ForwardPass(phases []template.PhaseTemplate, kickoff domain.Date, holidays holiday.Set) (map[Key]Span, domain.Date, error) {
	spans := make(map[Key]Span)
	cursor := kickoff
	for _, p := range phases {
		for _, a := range p.Activities {
			if a.DefaultDuration == 0 {
				continue
			}
			end, err := workday.EndDate(cursor, a.DefaultDuration, holidays)
			if err != nil {
				return nil, domain.Date{}, fmt.Errorf("dating %s %s: %w", p.Type, a.Code, err)
			}
			spans[Key{p.Type, a.Code}] = Span{Start: cursor, End: end}
			cursor = end.AddDays(1)
		}
	}
	return spans, cursor, nil
}

func emit(scaled template.Template, spans map[Key]Span) []domain.Phase {
	phases := make([]domain.Phase, 0, len(scaled.Phases))
	for _, p := range scaled.Phases {
		phase := domain.Phase{
			Type:       p.Type,
			Order:      p.Type.Order(),
			Activities: make([]domain.Activity, 0, len(p.Activities)),
		}
		for _, a := range p.Activities {
			act := domain.Activity{
				Code:              a.Code,
				Name:              a.Name,
				Order:             a.Order,
				DurationDays:      a.DefaultDuration,
				Status:            domain.ActivityPending,
				ParticipationType: a.ParticipationType,
			}
			if s, ok := spans[Key{p.Type, a.Code}]; ok {
				act.StartDate = s.Start.Ptr()
				act.EndDate = s.End.Ptr()
			}
			phase.Activities = append(phase.Activities, act)
		}
		phases = append(phases, phase)
	}
	return phases
}
