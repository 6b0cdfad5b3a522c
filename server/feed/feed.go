// Package feed renders the current day's menu as an RSS feed.
//
// The feed is a second consumer of the menu service next to the Telegram
// transport; it degrades to the same closed/no-menu texts the bot sends.
package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"github.com/rcurve/mensabot/internal/civil"
	"github.com/rcurve/mensabot/plugin/openmensa"
	"github.com/rcurve/mensabot/server/texts"
)

// Builder assembles the menu feed for one canteen.
type Builder struct {
	canteen     *openmensa.Canteen
	instanceURL string
}

// NewBuilder returns a Builder. instanceURL becomes the feed's link.
func NewBuilder(canteen *openmensa.Canteen, instanceURL string) *Builder {
	return &Builder{canteen: canteen, instanceURL: instanceURL}
}

// TodayRSS renders today's menu as an RSS document. Closed days and days
// without a plan still yield a feed with one informational item.
func (b *Builder) TodayRSS(ctx context.Context) (string, error) {
	today := civil.TodayIn(nil)

	var description string
	menu, err := b.canteen.GetMenuByDate(ctx, today)
	switch {
	case errors.Is(err, openmensa.ErrCanteenClosed):
		description = texts.ClosedError()
	case errors.Is(err, openmensa.ErrNoMenuAvailable):
		description = texts.NoMenuError()
	case err != nil:
		return "", err
	default:
		description = texts.Menu(menu, today, today)
	}

	now := time.Now()
	f := &feeds.Feed{
		Title:       fmt.Sprintf("Speiseplan %s", b.canteen.Name),
		Link:        &feeds.Link{Href: b.instanceURL},
		Description: fmt.Sprintf("Der tagesaktuelle Speiseplan der %s", b.canteen.Name),
		Created:     now,
		Items: []*feeds.Item{
			{
				Id:          today.ISO(),
				Title:       texts.HumanizedDate(today, today),
				Link:        &feeds.Link{Href: b.instanceURL},
				Description: description,
				Created:     now,
			},
		},
	}
	return f.ToRss()
}
