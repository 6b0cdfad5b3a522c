// Package bot dispatches Telegram commands to the menu service.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rcurve/mensabot/internal/civil"
	"github.com/rcurve/mensabot/plugin/openmensa"
	"github.com/rcurve/mensabot/server/dateparse"
	"github.com/rcurve/mensabot/server/internal/observability"
	"github.com/rcurve/mensabot/server/texts"
)

// Bot answers /mensa and /help commands for one canteen.
type Bot struct {
	api     *tgbotapi.BotAPI
	canteen *openmensa.Canteen
	sender  Sender
	logger  *slog.Logger
}

// New returns a Bot sending replies through the given API client.
func New(api *tgbotapi.BotAPI, canteen *openmensa.Canteen, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		api:     api,
		canteen: canteen,
		sender:  newTelegramSender(api),
		logger:  logger,
	}
}

// Run consumes updates by long polling until ctx is cancelled. Each update
// is handled in its own goroutine; the menu cache is safe under that.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	b.logger.Info("bot started polling")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one update. Non-command messages and unknown
// commands are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	uctx := observability.NewUpdateContext(b.logger, msg.Chat.ID, msg.Command())

	switch msg.Command() {
	case "mensa":
		b.handleMensa(ctx, uctx, msg)
	case "help", "start":
		b.reply(ctx, uctx, msg.Chat.ID, texts.Help(), false)
	default:
		return
	}

	uctx.Info("update handled",
		slog.Int64(observability.LogFieldDuration, uctx.DurationMs()))
}

func (b *Bot) handleMensa(ctx context.Context, uctx *observability.UpdateContext, msg *tgbotapi.Message) {
	today := civil.TodayIn(nil)

	var day civil.Date
	args := strings.Fields(msg.CommandArguments())
	switch len(args) {
	case 0:
		day = today
	case 1:
		parsed, err := dateparse.Parse(args[0], today)
		if err != nil {
			uctx.Debug("unparseable date", slog.String("input", args[0]))
			b.reply(ctx, uctx, msg.Chat.ID, texts.DateFormatError(), false)
			return
		}
		day = parsed
	default:
		return
	}

	menu, err := b.canteen.GetMenuByDate(ctx, day)
	switch {
	case errors.Is(err, openmensa.ErrCanteenClosed):
		b.reply(ctx, uctx, msg.Chat.ID, texts.ClosedError(), false)
	case errors.Is(err, openmensa.ErrNoMenuAvailable):
		b.reply(ctx, uctx, msg.Chat.ID, texts.NoMenuError(), false)
	case err != nil:
		// Unexpected, most likely a malformed upstream payload. Not a
		// domain outcome, so no reply pretends otherwise.
		uctx.Error("menu query failed", err, slog.String("date", day.ISO()))
	default:
		b.reply(ctx, uctx, msg.Chat.ID, texts.Menu(menu, day, today), true)
	}
}

func (b *Bot) reply(ctx context.Context, uctx *observability.UpdateContext, chatID int64, text string, html bool) {
	if err := b.sender.Send(ctx, chatID, text, html); err != nil {
		uctx.Error("send reply failed", err)
	}
}
