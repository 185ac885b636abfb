// Package clock pins every calendar-day computation to one organisation
// timezone.
package clock

import (
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04:05"
)

type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a clock for loc. now may be nil.
func New(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{loc: loc, now: now}
}

func (c *Clock) Location() *time.Location { return c.loc }

// Now returns the current instant in the org timezone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Day returns the org-local calendar date of t as midnight UTC. Days are
// stored and compared in this form.
func (c *Clock) Day(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (c *Clock) Today() time.Time {
	return c.Day(c.now())
}

// TimeOfDay formats t as HH:MM:SS in the org timezone.
func (c *Clock) TimeOfDay(t time.Time) string {
	return t.In(c.loc).Format(TimeOfDayLayout)
}

// ParseDay parses YYYY-MM-DD into the same form Day returns.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}
