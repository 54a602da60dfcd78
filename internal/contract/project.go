// Package contract holds the request and response shapes shared by the CLI,
// the HTTP API and the service layer.
package contract

import (
	"github.com/alexanderramin/samplan/internal/domain"
)

// CreateProjectRequest describes a new project. Durations nil means the base
// template's defaults.
type CreateProjectRequest struct {
	ShortID   string                 `json:"short_id" validate:"required"`
	Name      string                 `json:"name" validate:"required,max=200"`
	Client    string                 `json:"client" validate:"max=200"`
	Kickoff   domain.Date            `json:"kickoff_date"`
	Durations *domain.PhaseDurations `json:"phase_durations,omitempty"`
}

// PreviewRequest asks for a schedule without persisting anything.
type PreviewRequest struct {
	Kickoff   domain.Date            `json:"kickoff_date"`
	Durations *domain.PhaseDurations `json:"phase_durations,omitempty"`
}

type ProjectView struct {
	ID          string               `json:"id"`
	ShortID     string               `json:"short_id"`
	Name        string               `json:"name"`
	Client      string               `json:"client"`
	KickoffDate domain.Date          `json:"kickoff_date"`
	Status      domain.ProjectStatus `json:"status"`
}

func NewProjectView(p *domain.Project) ProjectView {
	return ProjectView{
		ID:          p.ID,
		ShortID:     p.ShortID,
		Name:        p.Name,
		Client:      p.Client,
		KickoffDate: p.KickoffDate,
		Status:      p.Status,
	}
}

type ActivityView struct {
	ID                string                   `json:"id,omitempty"`
	Code              string                   `json:"code"`
	Name              string                   `json:"name"`
	Order             int                      `json:"order"`
	DurationDays      int                      `json:"duration_days"`
	StartDate         *domain.Date             `json:"start_date"`
	EndDate           *domain.Date             `json:"end_date"`
	Status            domain.ActivityStatus    `json:"status"`
	Progress          int                      `json:"progress"`
	ParticipationType domain.ParticipationType `json:"participation_type"`
}

type PhaseView struct {
	Type       domain.PhaseType `json:"type"`
	Order      int              `json:"order"`
	StartDate  *domain.Date     `json:"start_date"`
	EndDate    *domain.Date     `json:"end_date"`
	Activities []ActivityView   `json:"activities"`
}

// ScheduleResponse is a dated schedule, persisted or previewed.
type ScheduleResponse struct {
	Project *ProjectView `json:"project,omitempty"`
	Kickoff domain.Date  `json:"kickoff_date"`
	EndDate domain.Date  `json:"end_date"`
	Phases  []PhaseView  `json:"phases"`
	// Warnings name holiday years with no stored data; those years were
	// scheduled without holidays.
	Warnings []string `json:"warnings,omitempty"`
}

// NewPhaseViews converts domain phases, deriving each phase's span from its
// dated activities.
func NewPhaseViews(phases []domain.Phase) []PhaseView {
	out := make([]PhaseView, 0, len(phases))
	for _, p := range phases {
		pv := PhaseView{Type: p.Type, Order: p.Order, Activities: make([]ActivityView, 0, len(p.Activities))}
		for _, a := range p.Activities {
			pv.Activities = append(pv.Activities, NewActivityView(&a))
			if a.StartDate != nil && (pv.StartDate == nil || a.StartDate.Before(*pv.StartDate)) {
				pv.StartDate = a.StartDate
			}
			if a.EndDate != nil && (pv.EndDate == nil || a.EndDate.After(*pv.EndDate)) {
				pv.EndDate = a.EndDate
			}
		}
		out = append(out, pv)
	}
	return out
}
