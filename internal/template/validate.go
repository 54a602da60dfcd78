package template

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/samplan/internal/domain"
)

// Validate checks a catalog for structural errors and returns them joined,
// or nil.
func Validate(t Template) error {
	if errs := ValidateErrors(t); len(errs) > 0 {
		return fmt.Errorf("%w: invalid template: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// ValidateErrors returns every problem found in t (empty if valid).
func ValidateErrors(t Template) []error {
	var errs []error

	if t.ID == "" {
		errs = append(errs, fmt.Errorf("template id is required"))
	}
	if t.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}

	seenPhase := map[domain.PhaseType]bool{}
	for i, p := range t.Phases {
		if !p.Type.Valid() {
			errs = append(errs, fmt.Errorf("phase[%d]: unknown type %q", i, p.Type))
			continue
		}
		if seenPhase[p.Type] {
			errs = append(errs, fmt.Errorf("phase[%d]: duplicate phase %s", i, p.Type))
		}
		seenPhase[p.Type] = true

		if p.Total() == 0 {
			errs = append(errs, fmt.Errorf("phase %s: at least one activity with a positive duration is required", p.Type))
		}

		codes := map[string]bool{}
		for j, a := range p.Activities {
			if a.Code == "" {
				errs = append(errs, fmt.Errorf("phase %s activity[%d]: code is required", p.Type, j))
			}
			if a.Name == "" {
				errs = append(errs, fmt.Errorf("phase %s activity[%d]: name is required", p.Type, j))
			}
			if codes[a.Code] {
				errs = append(errs, fmt.Errorf("phase %s activity[%d]: duplicate code %q", p.Type, j, a.Code))
			}
			codes[a.Code] = true
			if a.DefaultDuration < 0 {
				errs = append(errs, fmt.Errorf("phase %s activity %s: negative duration %d", p.Type, a.Code, a.DefaultDuration))
			}
			if !a.ParticipationType.Valid() {
				errs = append(errs, fmt.Errorf("phase %s activity %s: unknown participation type %q", p.Type, a.Code, a.ParticipationType))
			}
		}
	}

	for _, pt := range domain.PhaseTypes {
		if _, ok := t.Phase(pt); !ok {
			errs = append(errs, fmt.Errorf("phase %s is missing", pt))
		}
	}

	return errs
}
