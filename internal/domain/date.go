package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day and no zone. Schedule math works
// exclusively on Date so holiday lookups and day arithmetic can never drift
// across a UTC offset.
//
// The zero value is "no date"; use IsZero to detect it.
type Date struct {
	t time.Time // always midnight UTC
}

// NewDate builds a Date from its components. Out-of-range values normalize
// the way time.Date does (e.g. Jan 32 becomes Feb 1).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day t falls on in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current calendar day in the local zone.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &InvalidInputError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// IsWeekend reports whether d is a Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddDays moves d by n calendar days.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// DaysUntil returns the number of calendar days from d to other (negative
// when other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Ptr returns a pointer to a copy of d.
func (d Date) Ptr() *Date { return &d }

// MinDate returns the earlier of a and b.
func MinDate(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDate returns the later of a and b.
func MaxDate(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &InvalidInputError{Field: "date", Reason: "must be a YYYY-MM-DD string"}
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as TEXT.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan reads TEXT dates. Time values (some drivers parse DATE columns) are
// reduced to their calendar day without any zone conversion.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case time.Time:
		*d = DateOf(v)
		return nil
	default:
		return fmt.Errorf("scanning date: unsupported type %T", src)
	}
}

func (d *Date) scanString(s string) error {
	if s == "" {
		*d = Date{}
		return nil
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("scanning date: %w", err)
	}
	*d = parsed
	return nil
}
