package domain

import "time"

// Holiday is a non-working calendar day. Holidays are unique by Date.
type Holiday struct {
	Date      Date
	Name      string
	Recurring bool // same month/day every year
	CreatedAt time.Time
}
