package openmensa

import "errors"

// Domain outcomes callers branch on with errors.Is.
var (
	// ErrCanteenClosed means the canteen definitively serves nothing on the
	// requested date: a weekend, or a day the upstream publishes as closed.
	ErrCanteenClosed = errors.New("canteen is closed")

	// ErrNoMenuAvailable means no plan exists for the requested date: the
	// date lies outside the query window, or the upstream has no record of
	// it, or the fetch itself failed.
	ErrNoMenuAvailable = errors.New("no menu available")

	// ErrMalformedPayload marks a structural problem in an upstream
	// response. It never maps to a domain outcome; callers should treat it
	// as unexpected and log it.
	ErrMalformedPayload = errors.New("malformed meal payload")
)
