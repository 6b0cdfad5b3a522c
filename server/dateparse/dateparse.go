// Package dateparse turns a user-supplied date word into a calendar date.
//
// Users write dates in many shapes: German keywords ("heute", "übermorgen"),
// weekday names and their two-letter forms ("mittwoch", "mi"), and a handful
// of numeric formats. Weekday words resolve to the next occurrence of that
// weekday, today included.
package dateparse

import (
	"errors"
	"strings"
	"time"

	"github.com/rcurve/mensabot/internal/civil"
)

// ErrUnrecognized reports input that matches no supported keyword or format.
var ErrUnrecognized = errors.New("unrecognized date input")

var weekdays = map[string]time.Weekday{
	"montag": time.Monday, "mo": time.Monday,
	"dienstag": time.Tuesday, "di": time.Tuesday,
	"mittwoch": time.Wednesday, "mi": time.Wednesday,
	"donnerstag": time.Thursday, "do": time.Thursday,
	"freitag": time.Friday, "fr": time.Friday,
	"samstag": time.Saturday, "sa": time.Saturday,
	"sonntag": time.Sunday, "so": time.Sunday,
}

type dateFormat struct {
	layout      string
	yearMissing bool
}

var dateFormats = []dateFormat{
	{layout: "2.1", yearMissing: true},
	{layout: "2.1.", yearMissing: true},
	{layout: "2.1.06"},
	{layout: "2006-1-2"},
	{layout: "2.1.2006"},
}

// Parse resolves input to a date relative to today. Matching is
// case-insensitive. It fails with ErrUnrecognized for input that is neither
// a keyword, a weekday, nor one of the supported numeric formats.
func Parse(input string, today civil.Date) (civil.Date, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "heute", "today":
		return today, nil
	case "morgen", "tomorrow":
		return today.AddDays(1), nil
	case "übermorgen":
		return today.AddDays(2), nil
	case "gestern", "yesterday":
		return today.AddDays(-1), nil
	}

	if target, ok := weekdays[input]; ok {
		difference := (int(target) - int(today.Weekday()) + 7) % 7
		return today.AddDays(difference), nil
	}

	for _, format := range dateFormats {
		t, err := time.Parse(format.layout, input)
		if err != nil {
			continue
		}
		day := civil.DateOf(t)
		if format.yearMissing {
			day.Year = today.Year
		}
		return day, nil
	}

	return civil.Date{}, ErrUnrecognized
}
