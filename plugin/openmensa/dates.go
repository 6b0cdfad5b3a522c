package openmensa

import (
	"time"

	"github.com/rcurve/mensabot/internal/civil"
)

// queryWindowDays bounds how far into the past or future a menu may be
// requested. OpenMensa rarely carries plans beyond the coming week, so wider
// requests are rejected before any cache or network work happens.
const queryWindowDays = 7

// validateDate applies the rules that hold regardless of upstream state:
// weekends are always closed, and dates outside the query window never have
// a plan. Exactly queryWindowDays away is still inside the window.
func validateDate(day, today civil.Date) error {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return ErrCanteenClosed
	}

	if diff := day.DaysSince(today); diff > queryWindowDays || diff < -queryWindowDays {
		return ErrNoMenuAvailable
	}
	return nil
}
