package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/holiday"
	"github.com/alexanderramin/samplan/internal/repository"
	"github.com/alexanderramin/samplan/internal/schedule"
	"github.com/google/uuid"
)

type blockerService struct {
	projects repository.ProjectRepo
	blockers repository.BlockerRepo
	holidays HolidayService
	uow      db.UnitOfWork
	authz    Authorizer
	audit    AuditRecorder
	observer UseCaseObserver
}

func NewBlockerService(
	projects repository.ProjectRepo,
	blockers repository.BlockerRepo,
	holidays HolidayService,
	uow db.UnitOfWork,
	authz Authorizer,
	audit AuditRecorder,
	observers ...UseCaseObserver,
) BlockerService {
	return &blockerService{
		projects: projects,
		blockers: blockers,
		holidays: holidays,
		uow:      uow,
		authz:    authorizerOrAdmin(authz),
		audit:    auditOrNoop(audit),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *blockerService) Open(ctx context.Context, req contract.OpenBlockerRequest) (*domain.BlockerPeriod, error) {
	session, err := s.authz.RequireRole(ctx, "open blockers", activityEditors...)
	if err != nil {
		return nil, err
	}
	if req.Kind == "" {
		req.Kind = domain.BlockerKindBlocker
	}
	if !req.Kind.Valid() {
		return nil, domain.NewInvalidInput("kind", "unknown blocker kind %q (use BLOCKER or PAUSE)", req.Kind)
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if err := domain.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.StartDate.IsZero() {
		return nil, domain.NewInvalidInput("start_date", "is required")
	}
	p, err := resolveProject(ctx, s.projects, req.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &domain.BlockerPeriod{
		ID:        uuid.New().String(),
		ProjectID: p.ID,
		Kind:      req.Kind,
		Reason:    req.Reason,
		StartDate: req.StartDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.blockers.Create(ctx, b); err != nil {
		return nil, err
	}
	recordAudit(ctx, s.audit, s.observer, session, "blocker", b.ID, "open", map[string]any{
		"project_id": p.ID,
		"kind":       b.Kind,
		"start_date": b.StartDate,
	})
	return b, nil
}

func (s *blockerService) Resolve(ctx context.Context, id string, req contract.ResolveBlockerRequest) (result *contract.ResolveBlockerResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"blocker_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "resolve-blocker",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	session, err := s.authz.RequireRole(ctx, "resolve blockers", scheduleEditors...)
	if err != nil {
		return nil, err
	}
	if req.EndDate.IsZero() {
		return nil, domain.NewInvalidInput("end_date", "is required")
	}

	// Holidays are read before the transaction opens; the in-tx repos are the
	// only ones used once it has.
	existing, err := s.blockers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(ctx, existing.ProjectID)
	if err != nil {
		return nil, err
	}
	set, _, err := s.holidays.ForKickoff(ctx, project.KickoffDate)
	if err != nil {
		return nil, err
	}

	result = &contract.ResolveBlockerResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBlockers := repository.NewSQLiteBlockerRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		b, err := txBlockers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := b.Resolve(req.EndDate, req.ImpactDays, now); err != nil {
			return err
		}
		if err := txBlockers.Update(ctx, b); err != nil {
			return err
		}

		all, err := txBlockers.ListByProject(ctx, b.ProjectID)
		if err != nil {
			return err
		}
		days := domain.TotalPendingImpact(all)
		if days > 0 {
			shifted, err := s.shiftSchedule(ctx, txPhases, b.ProjectID, days, set, now)
			if err != nil {
				return err
			}
			result.AppliedDays = days
			result.Shifted = shifted
		}

		// Everything resolved is now reflected in the dates.
		for _, other := range all {
			if !other.Resolved || other.Applied {
				continue
			}
			other.Applied = true
			other.UpdatedAt = now
			if err := txBlockers.Update(ctx, other); err != nil {
				return err
			}
			if other.ID == b.ID {
				b = other
			}
		}
		result.Blocker = contract.NewBlockerView(b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["applied_days"] = result.AppliedDays
	fields["shifted"] = len(result.Shifted)
	recordAudit(ctx, s.audit, s.observer, session, "project", project.ID, "recalculate", map[string]any{
		"blocker_id":   id,
		"impact_days":  req.ImpactDays,
		"applied_days": result.AppliedDays,
		"shifted":      result.Shifted,
	})
	return result, nil
}

// shiftSchedule moves the project's pending activities by days working days
// and writes back the ones whose dates changed.
func (s *blockerService) shiftSchedule(ctx context.Context, phases *repository.SQLitePhaseRepo, projectID string, days int, set holiday.Set, now time.Time) ([]string, error) {
	before, err := phases.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	after, err := schedule.Recalculate(before, days, set)
	if err != nil {
		return nil, err
	}
	for i := range after {
		for j := range after[i].Activities {
			a := &after[i].Activities[j]
			if schedule.SameSpan(before[i].Activities[j], *a) {
				continue
			}
			a.UpdatedAt = now
			if err := phases.UpdateActivity(ctx, a); err != nil {
				return nil, err
			}
		}
	}
	return schedule.Shifted(before, after), nil
}

func (s *blockerService) ListByProject(ctx context.Context, ref string) ([]*domain.BlockerPeriod, error) {
	p, err := resolveProject(ctx, s.projects, ref)
	if err != nil {
		return nil, err
	}
	return s.blockers.ListByProject(ctx, p.ID)
}
