package bot

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Sender delivers a reply to a chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string, html bool) error
}

// telegramSender sends through the Bot API with a per-chat rate limiter, so
// a burst of queries from one chat cannot run the bot into Telegram's
// flood limits.
type telegramSender struct {
	api *tgbotapi.BotAPI

	mu     sync.Mutex
	limits map[int64]*rate.Limiter
}

func newTelegramSender(api *tgbotapi.BotAPI) *telegramSender {
	return &telegramSender{
		api:    api,
		limits: make(map[int64]*rate.Limiter),
	}
}

// limiter gets or creates the limiter for the given chat.
func (s *telegramSender) limiter(chatID int64) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limiter, ok := s.limits[chatID]; ok {
		return limiter
	}

	// Telegram allows roughly one message per second per chat.
	limiter := rate.NewLimiter(rate.Every(time.Second), 3)
	s.limits[chatID] = limiter
	return limiter
}

func (s *telegramSender) Send(ctx context.Context, chatID int64, text string, html bool) error {
	if err := s.limiter(chatID).Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limit wait")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if html {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	if _, err := s.api.Send(msg); err != nil {
		return errors.Wrap(err, "send message")
	}
	return nil
}
