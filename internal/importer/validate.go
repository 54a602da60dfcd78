package importer

import (
	"fmt"

	"github.com/alexanderramin/samplan/internal/domain"
)

// ValidateHolidayFile checks the file for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateHolidayFile(file *HolidayFile) []error {
	var errs []error

	if len(file.Holidays) == 0 {
		errs = append(errs, fmt.Errorf("holidays: at least one holiday is required"))
	}

	seen := make(map[string]int, len(file.Holidays))
	for i, h := range file.Holidays {
		prefix := fmt.Sprintf("holidays[%d]", i)
		if h.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if h.Date == "" {
			errs = append(errs, fmt.Errorf("%s.date is required", prefix))
			continue
		}
		if _, err := domain.ParseDate(h.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: invalid date format %q (expected YYYY-MM-DD)", prefix, h.Date))
			continue
		}
		if first, dup := seen[h.Date]; dup {
			errs = append(errs, fmt.Errorf("%s.date: %s already listed at holidays[%d]", prefix, h.Date, first))
			continue
		}
		seen[h.Date] = i
	}

	for _, y := range file.Years {
		if y < 1900 || y > 2200 {
			errs = append(errs, fmt.Errorf("years: %d is out of range", y))
		}
	}

	return errs
}
