package contract

import (
	"github.com/alexanderramin/samplan/internal/domain"
)

type StatusRequest struct {
	// Today overrides the evaluation day; nil means the local calendar day.
	Today         *domain.Date
	ProjectScope  []string
	IncludeClosed bool
}

func NewStatusRequest() StatusRequest {
	return StatusRequest{}
}

type PhaseStatusView struct {
	Type      domain.PhaseType `json:"type"`
	StartDate *domain.Date     `json:"start_date"`
	EndDate   *domain.Date     `json:"end_date"`
	Total     int              `json:"total"`
	Completed int              `json:"completed"`
	Delayed   int              `json:"delayed"`
	Progress  int              `json:"progress"`
}

type ProjectStatusView struct {
	ProjectID         string                `json:"project_id"`
	ShortID           string                `json:"short_id"`
	Name              string                `json:"name"`
	Client            string                `json:"client"`
	StartDate         domain.Date           `json:"start_date"`
	EndDate           domain.Date           `json:"end_date"`
	ActualProgress    int                   `json:"actual_progress"`
	EstimatedProgress int                   `json:"estimated_progress"`
	DelayedActivities int                   `json:"delayed_activities"`
	Variance          domain.VarianceStatus `json:"variance"`
	VarianceLabel     string                `json:"variance_label"`
	Gap               int                   `json:"gap"`
	// PendingImpactDays is resolved blocker impact not yet applied to dates.
	PendingImpactDays int               `json:"pending_impact_days"`
	OpenBlockers      int               `json:"open_blockers"`
	Phases            []PhaseStatusView `json:"phases"`
}

type StatusSummary struct {
	Today          domain.Date `json:"today"`
	CountsTotal    int         `json:"counts_total"`
	CountsAhead    int         `json:"counts_ahead"`
	CountsOnTrack  int         `json:"counts_on_track"`
	CountsBehind   int         `json:"counts_behind"`
	CountsCritical int         `json:"counts_critical"`
}

type StatusResponse struct {
	Summary  StatusSummary       `json:"summary"`
	Projects []ProjectStatusView `json:"projects"`
	Warnings []string            `json:"warnings,omitempty"`
}

type StatusErrorCode string

const (
	StatusErrInvalidScope StatusErrorCode = "INVALID_SCOPE"
)

type StatusError struct {
	Code    StatusErrorCode
	Message string
}

func (e *StatusError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Unwrap lets scope errors surface as client errors.
func (e *StatusError) Unwrap() error { return domain.ErrInvalidInput }
