package openmensa

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rcurve/mensabot/internal/civil"
)

// menuKey identifies one canteen's plan for one calendar date. Equality is
// exact; every cache lookup goes through it.
type menuKey struct {
	canteen int
	day     civil.Date
}

// dayMenu is a cached day: either a menu or a confirmed closed day. Keeping
// the closed case an explicit flag (rather than a magic value) lets the
// cache distinguish "known closed" from "never fetched".
type dayMenu struct {
	menu   Menu
	closed bool
}

// Canteen answers menu queries for a single canteen. Each Canteen owns a
// private cache; canteens never share cache state.
type Canteen struct {
	ID   int
	Name string

	fetcher Fetcher
	cache   *timedCache[menuKey, dayMenu]
	logger  *slog.Logger
}

// NewCanteen returns a Canteen backed by the given fetcher.
func NewCanteen(id int, name string, fetcher Fetcher, logger *slog.Logger) *Canteen {
	if logger == nil {
		logger = slog.Default()
	}
	return &Canteen{
		ID:      id,
		Name:    name,
		fetcher: fetcher,
		cache:   newTimedCache[menuKey, dayMenu](defaultCacheSize),
		logger:  logger,
	}
}

// GetMenuByDate resolves the menu for the given date.
//
// It fails with ErrCanteenClosed on weekends and published closed days, and
// with ErrNoMenuAvailable when the date is outside the query window or the
// upstream has nothing for it. Any other error is unexpected and should be
// logged by the caller, not shown to users as a domain outcome.
//
// The fetch happens outside the cache lock, so concurrent queries for
// different uncached days proceed in parallel. Two callers missing on the
// same day may both fetch; the last write wins and both answers are correct.
func (c *Canteen) GetMenuByDate(ctx context.Context, day civil.Date) (Menu, error) {
	today := civil.TodayIn(nil)
	if err := validateDate(day, today); err != nil {
		return nil, err
	}

	key := menuKey{canteen: c.ID, day: day}
	if cached, ok := c.cache.get(key); ok {
		c.logger.Debug("menu served from cache",
			slog.Int("canteen", c.ID), slog.String("date", day.ISO()))
		if cached.closed {
			return nil, ErrCanteenClosed
		}
		return cached.menu, nil
	}

	c.logger.Debug("menu not cached, fetching",
		slog.Int("canteen", c.ID), slog.String("date", day.ISO()))

	meals, found, err := c.fetcher.MealsOn(ctx, c.ID, day)
	if err != nil {
		if errors.Is(err, ErrMalformedPayload) {
			return nil, err
		}
		// Transport trouble is indistinguishable from "nothing there"
		// as far as the user is concerned. Log it and answer no-menu.
		c.logger.Warn("menu fetch failed",
			slog.Int("canteen", c.ID), slog.String("date", day.ISO()),
			slog.String("error", err.Error()))
		found = false
	}

	var result dayMenu
	if found {
		menu, closed, err := normalizeMenu(meals)
		if err != nil {
			return nil, err
		}
		result = dayMenu{menu: menu, closed: closed}
	}

	if expiry, ok := retainUntil(day, today, time.Now(), !found); ok {
		c.cache.put(key, result, expiry)
	}

	switch {
	case !found:
		return nil, ErrNoMenuAvailable
	case result.closed:
		return nil, ErrCanteenClosed
	default:
		return result.menu, nil
	}
}

// FlushCache drops every cached day. Meant for manual invalidation; the
// request path never calls it.
func (c *Canteen) FlushCache() {
	c.cache.flush()
}
