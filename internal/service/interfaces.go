package service

import (
	"context"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/holiday"
)

type ProjectService interface {
	// Create schedules and persists a project with all its phases and
	// activities, or nothing at all.
	Create(ctx context.Context, req contract.CreateProjectRequest) (*contract.ScheduleResponse, error)
	// GetByID accepts a project ID or short ID.
	GetByID(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, includeClosed bool) ([]*domain.Project, error)
	Close(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
	Schedule(ctx context.Context, ref string) (*contract.ScheduleResponse, error)
	Preview(ctx context.Context, req contract.PreviewRequest) (*contract.ScheduleResponse, error)
}

type StatusService interface {
	GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error)
}

type ActivityService interface {
	// SetStatus moves an activity to status and, when progress is non-nil,
	// records partial progress afterwards.
	SetStatus(ctx context.Context, activityID string, status domain.ActivityStatus, progress *int) (*domain.Activity, error)
}

type BlockerService interface {
	Open(ctx context.Context, req contract.OpenBlockerRequest) (*domain.BlockerPeriod, error)
	// Resolve closes a blocker and shifts pending activities by every
	// resolved impact not yet applied to the schedule.
	Resolve(ctx context.Context, id string, req contract.ResolveBlockerRequest) (*contract.ResolveBlockerResult, error)
	ListByProject(ctx context.Context, ref string) ([]*domain.BlockerPeriod, error)
}

type HolidayService interface {
	ImportYear(ctx context.Context, year int) (*contract.HolidayImportResult, error)
	ImportFile(ctx context.Context, path string) (*contract.HolidayImportResult, error)
	List(ctx context.Context, year int) ([]domain.Holiday, error)
	Add(ctx context.Context, h domain.Holiday) error
	Delete(ctx context.Context, date domain.Date) error
	// ForKickoff loads the holidays of the kickoff year window. Years with
	// no stored holidays are reported, not treated as errors.
	ForKickoff(ctx context.Context, kickoff domain.Date) (holiday.Set, []int, error)
}
