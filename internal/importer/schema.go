// Package importer reads holiday calendars from JSON files so organisations
// can load regional or company days off alongside the national calendar.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// HolidayFile is the top-level JSON structure for a holiday import.
type HolidayFile struct {
	Country  string          `json:"country,omitempty"`
	Holidays []HolidayImport `json:"holidays"`
	// Years, when set, repeats every recurring holiday into each listed year.
	Years []int `json:"years,omitempty"`
}

// HolidayImport defines a single holiday in the import file.
type HolidayImport struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	Recurring bool   `json:"recurring,omitempty"`
}

// LoadHolidayFile reads and parses a holiday import JSON file.
func LoadHolidayFile(path string) (*HolidayFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseHolidayFile(data)
}

func ParseHolidayFile(data []byte) (*HolidayFile, error) {
	var file HolidayFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing holiday file: %w", err)
	}
	return &file, nil
}
