package openmensa

import (
	"time"

	"github.com/rcurve/mensabot/internal/civil"
)

const (
	// cacheKeepDuration is how long a cached day stays servable before it
	// must be fetched again.
	cacheKeepDuration = 7 * 24 * time.Hour

	// pastCutoffDays: plans at least this far in the past are answered but
	// never cached, a repeat request for them is unlikely and the slots are
	// better spent on the coming days.
	pastCutoffDays = 2
)

// retainUntil decides how long a freshly fetched result may stay cached.
// ok=false means the result must not be cached at all. Two rules apply
// independently: a fetch that produced nothing reusable is never cached,
// and neither is a date far enough in the past. A confirmed closed day is a
// stable fact and is cached like any menu.
func retainUntil(day, today civil.Date, now time.Time, absent bool) (expiry time.Time, ok bool) {
	if absent {
		return time.Time{}, false
	}
	if today.DaysSince(day) >= pastCutoffDays {
		return time.Time{}, false
	}
	return now.Add(cacheKeepDuration), true
}
