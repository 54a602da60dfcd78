package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/db"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/progress"
	"github.com/alexanderramin/samplan/internal/repository"
	"github.com/alexanderramin/samplan/internal/schedule"
	"github.com/alexanderramin/samplan/internal/template"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	phases   repository.PhaseRepo
	holidays HolidayService
	uow      db.UnitOfWork
	authz    Authorizer
	audit    AuditRecorder
	base     template.Template
	observer UseCaseObserver
}

// NewProjectService schedules new projects from base, the activity catalog.
func NewProjectService(
	projects repository.ProjectRepo,
	phases repository.PhaseRepo,
	holidays HolidayService,
	uow db.UnitOfWork,
	authz Authorizer,
	audit AuditRecorder,
	base template.Template,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		projects: projects,
		phases:   phases,
		holidays: holidays,
		uow:      uow,
		authz:    authorizerOrAdmin(authz),
		audit:    auditOrNoop(audit),
		base:     base,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, req contract.CreateProjectRequest) (resp *contract.ScheduleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"short_id": req.ShortID,
		"kickoff":  req.Kickoff.String(),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	// Authorization comes before any computation.
	session, err := s.authz.RequireRole(ctx, "create projects", scheduleEditors...)
	if err != nil {
		return nil, err
	}

	req.ShortID = strings.ToUpper(strings.TrimSpace(req.ShortID))
	req.Name = strings.TrimSpace(req.Name)
	if err = domain.ValidateStruct(req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	project := domain.NewProject(uuid.New().String(), req.ShortID, req.Name, req.Client, req.Kickoff, now)
	if err = project.ValidateShortID(); err != nil {
		return nil, err
	}

	phases, warnings, err := s.build(ctx, req.Kickoff, req.Durations)
	if err != nil {
		return nil, err
	}
	assignIDs(project.ID, phases, now)
	fields["activity_count"] = countActivities(phases)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		if err := txProjects.Create(ctx, project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for i := range phases {
			if err := txPhases.CreatePhase(ctx, &phases[i]); err != nil {
				return err
			}
			for j := range phases[i].Activities {
				if err := txPhases.CreateActivity(ctx, &phases[i].Activities[j]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp = scheduleResponse(project, phases, warnings)
	recordAudit(ctx, s.audit, s.observer, session, "project", project.ID, "create", map[string]any{
		"short_id":  project.ShortID,
		"kickoff":   project.KickoffDate,
		"end_date":  resp.EndDate,
		"durations": durationsOrDefault(req.Durations, s.base),
	})
	return resp, nil
}

// build resolves holidays and lays out the schedule. It touches no storage
// other than the holiday lookup.
func (s *projectService) build(ctx context.Context, kickoff domain.Date, durations *domain.PhaseDurations) ([]domain.Phase, []string, error) {
	if kickoff.IsZero() {
		return nil, nil, domain.NewInvalidInput("kickoff_date", "is required")
	}
	d := durationsOrDefault(durations, s.base)
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	set, missing, err := s.holidays.ForKickoff(ctx, kickoff)
	if err != nil {
		return nil, nil, err
	}
	phases, err := schedule.Build(kickoff, d, set, s.base)
	if err != nil {
		return nil, nil, err
	}
	return phases, missingYearWarnings(missing), nil
}

func durationsOrDefault(d *domain.PhaseDurations, base template.Template) domain.PhaseDurations {
	if d == nil {
		return base.Durations()
	}
	return *d
}

func assignIDs(projectID string, phases []domain.Phase, now time.Time) {
	for i := range phases {
		phases[i].ID = uuid.New().String()
		phases[i].ProjectID = projectID
		for j := range phases[i].Activities {
			a := &phases[i].Activities[j]
			a.ID = uuid.New().String()
			a.PhaseID = phases[i].ID
			a.UpdatedAt = now
		}
	}
}

func countActivities(phases []domain.Phase) int {
	n := 0
	for _, p := range phases {
		n += len(p.Activities)
	}
	return n
}

func scheduleResponse(p *domain.Project, phases []domain.Phase, warnings []string) *contract.ScheduleResponse {
	resp := &contract.ScheduleResponse{
		Phases:   contract.NewPhaseViews(phases),
		Warnings: warnings,
	}
	if p != nil {
		view := contract.NewProjectView(p)
		resp.Project = &view
		resp.Kickoff = p.KickoffDate
	}
	resp.EndDate = progress.ProjectEndDate(phases, resp.Kickoff)
	return resp
}

func (s *projectService) GetByID(ctx context.Context, ref string) (*domain.Project, error) {
	return resolveProject(ctx, s.projects, ref)
}

// resolveProject looks a project up by ID, then by short ID.
func resolveProject(ctx context.Context, projects repository.ProjectRepo, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.NewInvalidInput("project", "an ID or short ID is required")
	}
	p, err := projects.GetByID(ctx, ref)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return p, err
	}
	p, err = projects.GetByShortID(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.NotFoundError{Entity: "project", ID: ref}
	}
	return p, err
}

func (s *projectService) List(ctx context.Context, includeClosed bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeClosed)
}

func (s *projectService) Close(ctx context.Context, ref string) error {
	session, err := s.authz.RequireRole(ctx, "close projects", scheduleEditors...)
	if err != nil {
		return err
	}
	p, err := resolveProject(ctx, s.projects, ref)
	if err != nil {
		return err
	}
	if !p.Close(time.Now().UTC()) {
		return nil
	}
	if err := s.projects.Update(ctx, p); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, s.observer, session, "project", p.ID, "close", nil)
	return nil
}

func (s *projectService) Delete(ctx context.Context, ref string) error {
	session, err := s.authz.RequireRole(ctx, "delete projects", scheduleEditors...)
	if err != nil {
		return err
	}
	p, err := resolveProject(ctx, s.projects, ref)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, p.ID); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, s.observer, session, "project", p.ID, "delete", map[string]any{"short_id": p.ShortID})
	return nil
}

func (s *projectService) Schedule(ctx context.Context, ref string) (*contract.ScheduleResponse, error) {
	p, err := resolveProject(ctx, s.projects, ref)
	if err != nil {
		return nil, err
	}
	phases, err := s.phases.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	return scheduleResponse(p, phases, nil), nil
}

func (s *projectService) Preview(ctx context.Context, req contract.PreviewRequest) (*contract.ScheduleResponse, error) {
	phases, warnings, err := s.build(ctx, req.Kickoff, req.Durations)
	if err != nil {
		return nil, err
	}
	resp := scheduleResponse(nil, phases, warnings)
	resp.Kickoff = req.Kickoff
	resp.EndDate = progress.ProjectEndDate(phases, req.Kickoff)
	return resp, nil
}
