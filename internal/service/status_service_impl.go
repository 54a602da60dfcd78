package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/progress"
	"github.com/alexanderramin/samplan/internal/repository"
)

type statusService struct {
	projects repository.ProjectRepo
	phases   repository.PhaseRepo
	blockers repository.BlockerRepo
	policy   progress.VariancePolicy
}

func NewStatusService(
	projects repository.ProjectRepo,
	phases repository.PhaseRepo,
	blockers repository.BlockerRepo,
	policy progress.VariancePolicy,
) StatusService {
	return &statusService{
		projects: projects,
		phases:   phases,
		blockers: blockers,
		policy:   policy,
	}
}

func (s *statusService) GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error) {
	today := domain.Today()
	if req.Today != nil {
		today = *req.Today
	}

	projects, err := s.projects.List(ctx, req.IncludeClosed)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	projects, err = filterProjectsByScope(projects, req.ProjectScope)
	if err != nil {
		return nil, err
	}

	views := make([]contract.ProjectStatusView, 0, len(projects))
	for _, p := range projects {
		view, err := s.projectView(ctx, p, today)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	sortStatusViews(views)

	resp := &contract.StatusResponse{
		Summary:  buildStatusSummary(views, today),
		Projects: views,
	}
	for _, v := range views {
		if v.PendingImpactDays > 0 {
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("%s: %d day(s) of resolved blocker impact not yet applied", v.ShortID, v.PendingImpactDays))
		}
	}
	return resp, nil
}

func (s *statusService) projectView(ctx context.Context, p *domain.Project, today domain.Date) (contract.ProjectStatusView, error) {
	phases, err := s.phases.ListByProject(ctx, p.ID)
	if err != nil {
		return contract.ProjectStatusView{}, fmt.Errorf("loading schedule for %s: %w", p.ShortID, err)
	}
	blockers, err := s.blockers.ListByProject(ctx, p.ID)
	if err != nil {
		return contract.ProjectStatusView{}, fmt.Errorf("loading blockers for %s: %w", p.ShortID, err)
	}

	sum := progress.Summarize(phases, p.KickoffDate, today, s.policy)
	view := contract.ProjectStatusView{
		ProjectID:         p.ID,
		ShortID:           p.ShortID,
		Name:              p.Name,
		Client:            p.Client,
		StartDate:         sum.StartDate,
		EndDate:           sum.EndDate,
		ActualProgress:    sum.ActualProgress,
		EstimatedProgress: sum.EstimatedProgress,
		DelayedActivities: sum.DelayedActivities,
		Variance:          sum.Variance.Status,
		VarianceLabel:     sum.Variance.Label,
		Gap:               sum.Variance.Gap,
		PendingImpactDays: domain.TotalPendingImpact(blockers),
		Phases:            make([]contract.PhaseStatusView, 0, len(sum.Phases)),
	}
	for _, b := range blockers {
		if !b.Resolved {
			view.OpenBlockers++
		}
	}
	for _, ps := range sum.Phases {
		view.Phases = append(view.Phases, contract.PhaseStatusView{
			Type:      ps.Type,
			StartDate: ps.Start,
			EndDate:   ps.End,
			Total:     ps.Total,
			Completed: ps.Completed,
			Delayed:   ps.Delayed,
			Progress:  ps.Progress,
		})
	}
	return view, nil
}

// filterProjectsByScope keeps projects named in scope by ID or short ID.
// An empty scope keeps everything; an unknown entry is an error.
func filterProjectsByScope(projects []*domain.Project, scope []string) ([]*domain.Project, error) {
	if len(scope) == 0 {
		return projects, nil
	}
	wanted := make(map[string]bool, len(scope))
	for _, ref := range scope {
		wanted[strings.ToUpper(strings.TrimSpace(ref))] = true
	}
	matched := make(map[string]bool, len(scope))
	var filtered []*domain.Project
	for _, p := range projects {
		idKey, shortKey := strings.ToUpper(p.ID), strings.ToUpper(p.ShortID)
		if wanted[idKey] || wanted[shortKey] {
			filtered = append(filtered, p)
			matched[idKey] = true
			matched[shortKey] = true
		}
	}
	for ref := range wanted {
		if !matched[ref] {
			return nil, &contract.StatusError{
				Code:    contract.StatusErrInvalidScope,
				Message: fmt.Sprintf("no project matches %q", ref),
			}
		}
	}
	return filtered, nil
}

// sortStatusViews puts the worst variance first, then orders by end date.
func sortStatusViews(views []contract.ProjectStatusView) {
	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := views[i].Variance.Rank(), views[j].Variance.Rank()
		if ri != rj {
			return ri < rj
		}
		if !views[i].EndDate.Equal(views[j].EndDate) {
			return views[i].EndDate.Before(views[j].EndDate)
		}
		return views[i].ShortID < views[j].ShortID
	})
}

func buildStatusSummary(views []contract.ProjectStatusView, today domain.Date) contract.StatusSummary {
	sum := contract.StatusSummary{Today: today, CountsTotal: len(views)}
	for _, v := range views {
		switch v.Variance {
		case domain.VarianceAhead:
			sum.CountsAhead++
		case domain.VarianceOnTrack:
			sum.CountsOnTrack++
		case domain.VarianceBehind:
			sum.CountsBehind++
		case domain.VarianceCritical:
			sum.CountsCritical++
		}
	}
	return sum
}
