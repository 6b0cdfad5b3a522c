// Package civil provides a calendar-date value type.
//
// The bot reasons about whole days: a meal plan belongs to a date, not an
// instant. Date carries no time component and no location, is comparable,
// and is safe to use as a map key, which time.Time is not.
package civil

import (
	"fmt"
	"time"
)

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the Date on which t falls, in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// TodayIn returns the current Date in the given location.
// A nil location means the system's local timezone.
func TodayIn(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(time.Now().In(loc))
}

// ParseDate parses an ISO 8601 date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns the midnight at the beginning of d in the given location.
// A nil location means UTC.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// ISO returns d in ISO 8601 form (YYYY-MM-DD).
func (d Date) ISO() string {
	return d.Time(time.UTC).Format("2006-01-02")
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.ISO()
}

// Weekday returns the day of the week on which d falls.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// DaysSince returns the number of whole days from other to d.
// The result is positive when d falls after other.
func (d Date) DaysSince(other Date) int {
	return int(d.Time(time.UTC).Sub(other.Time(time.UTC)) / (24 * time.Hour))
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}
