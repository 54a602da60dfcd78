package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PhaseDurations holds the requested working-day length of each SAM phase.
type PhaseDurations struct {
	Prepare int `json:"prepare" validate:"gt=0"`
	Connect int `json:"connect" validate:"gt=0"`
	Realize int `json:"realize" validate:"gt=0"`
	Run     int `json:"run" validate:"gt=0"`
}

// For returns the duration requested for phase p.
func (d PhaseDurations) For(p PhaseType) int {
	switch p {
	case PhasePrepare:
		return d.Prepare
	case PhaseConnect:
		return d.Connect
	case PhaseRealize:
		return d.Realize
	case PhaseRun:
		return d.Run
	}
	return 0
}

// Set assigns the duration of phase p.
func (d *PhaseDurations) Set(p PhaseType, days int) {
	switch p {
	case PhasePrepare:
		d.Prepare = days
	case PhaseConnect:
		d.Connect = days
	case PhaseRealize:
		d.Realize = days
	case PhaseRun:
		d.Run = days
	}
}

// Total sums all four phases.
func (d PhaseDurations) Total() int {
	return d.Prepare + d.Connect + d.Realize + d.Run
}

// Validate rejects any non-positive phase duration.
func (d PhaseDurations) Validate() error {
	return ValidateStruct(d)
}

func (d PhaseDurations) String() string {
	return fmt.Sprintf("prepare=%d,connect=%d,realize=%d,run=%d", d.Prepare, d.Connect, d.Realize, d.Run)
}

// ValidateStruct runs tag validation and reports the first failure as an
// InvalidInputError keyed by the lower-cased field name.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &InvalidInputError{Reason: err.Error()}
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "gt":
		return NewInvalidInput(field, "must be greater than %s (got %v)", fe.Param(), fe.Value())
	case "required":
		return NewInvalidInput(field, "is required")
	case "max":
		return NewInvalidInput(field, "must be at most %s characters", fe.Param())
	default:
		return NewInvalidInput(field, "failed %q validation", fe.Tag())
	}
}
