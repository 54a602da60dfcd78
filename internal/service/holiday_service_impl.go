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
	"github.com/alexanderramin/samplan/internal/importer"
	"github.com/alexanderramin/samplan/internal/repository"
)

const (
	minHolidayYear = 1900
	maxHolidayYear = 2200
)

type holidayService struct {
	holidays repository.HolidayRepo
	provider holiday.Provider
	uow      db.UnitOfWork
	authz    Authorizer
	audit    AuditRecorder
	observer UseCaseObserver
}

func NewHolidayService(
	holidays repository.HolidayRepo,
	provider holiday.Provider,
	uow db.UnitOfWork,
	authz Authorizer,
	audit AuditRecorder,
	observers ...UseCaseObserver,
) HolidayService {
	if provider == nil {
		provider = holiday.PeruProvider{}
	}
	return &holidayService{
		holidays: holidays,
		provider: provider,
		uow:      uow,
		authz:    authorizerOrAdmin(authz),
		audit:    auditOrNoop(audit),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *holidayService) ImportYear(ctx context.Context, year int) (result *contract.HolidayImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"year": year}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-holidays",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	session, err := s.authz.RequireRole(ctx, "import holidays", scheduleEditors...)
	if err != nil {
		return nil, err
	}
	if year < minHolidayYear || year > maxHolidayYear {
		return nil, domain.NewInvalidInput("year", "%d is outside %d-%d", year, minHolidayYear, maxHolidayYear)
	}

	result, err = s.insertAll(ctx, fmt.Sprintf("provider:%d", year), s.provider.HolidaysForYear(year))
	if err != nil {
		return nil, err
	}
	fields["inserted"] = result.Inserted
	recordAudit(ctx, s.audit, s.observer, session, "holiday", fmt.Sprint(year), "import", result)
	return result, nil
}

func (s *holidayService) ImportFile(ctx context.Context, path string) (result *contract.HolidayImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-holiday-file",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	session, err := s.authz.RequireRole(ctx, "import holidays", scheduleEditors...)
	if err != nil {
		return nil, err
	}

	file, err := importer.LoadHolidayFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading holiday file: %w", err)
	}
	if errs := importer.ValidateHolidayFile(file); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	hs, err := importer.Convert(file)
	if err != nil {
		return nil, fmt.Errorf("converting holiday file: %w", err)
	}

	result, err = s.insertAll(ctx, path, hs)
	if err != nil {
		return nil, err
	}
	fields["inserted"] = result.Inserted
	recordAudit(ctx, s.audit, s.observer, session, "holiday", path, "import", result)
	return result, nil
}

// insertAll writes hs in one transaction; dates already stored are skipped.
func (s *holidayService) insertAll(ctx context.Context, source string, hs []domain.Holiday) (*contract.HolidayImportResult, error) {
	result := &contract.HolidayImportResult{Source: source}
	now := time.Now().UTC()
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txHolidays := repository.NewSQLiteHolidayRepo(tx)
		for i := range hs {
			h := hs[i]
			if h.CreatedAt.IsZero() {
				h.CreatedAt = now
			}
			inserted, err := txHolidays.Create(ctx, &h)
			if err != nil {
				return err
			}
			if inserted {
				result.Inserted++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *holidayService) List(ctx context.Context, year int) ([]domain.Holiday, error) {
	return s.holidays.ListByYears(ctx, []int{year})
}

func (s *holidayService) Add(ctx context.Context, h domain.Holiday) error {
	session, err := s.authz.RequireRole(ctx, "add holidays", scheduleEditors...)
	if err != nil {
		return err
	}
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return domain.NewInvalidInput("name", "is required")
	}
	if h.Date.IsZero() {
		return domain.NewInvalidInput("date", "is required")
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	inserted, err := s.holidays.Create(ctx, &h)
	if err != nil {
		return err
	}
	if !inserted {
		return domain.NewInvalidInput("date", "a holiday already exists on %s", h.Date)
	}
	recordAudit(ctx, s.audit, s.observer, session, "holiday", h.Date.String(), "add", map[string]any{"name": h.Name})
	return nil
}

func (s *holidayService) Delete(ctx context.Context, date domain.Date) error {
	session, err := s.authz.RequireRole(ctx, "delete holidays", scheduleEditors...)
	if err != nil {
		return err
	}
	if err := s.holidays.Delete(ctx, date); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, s.observer, session, "holiday", date.String(), "delete", nil)
	return nil
}

func (s *holidayService) ForKickoff(ctx context.Context, kickoff domain.Date) (holiday.Set, []int, error) {
	years := holiday.YearWindow(kickoff)
	hs, err := s.holidays.ListByYears(ctx, years)
	if err != nil {
		return nil, nil, fmt.Errorf("loading holidays: %w", err)
	}
	set := holiday.NewSet(hs...)
	present := set.Years()
	var missing []int
	for _, y := range years {
		if !present[y] {
			missing = append(missing, y)
		}
	}
	return set, missing, nil
}

func missingYearWarnings(years []int) []string {
	var out []string
	for _, y := range years {
		out = append(out, fmt.Sprintf("no holidays stored for %d; that year was scheduled without holidays", y))
	}
	return out
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return &domain.InvalidInputError{Reason: msg}
}
