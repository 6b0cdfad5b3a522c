// Package server wires the HTTP surface: health check, the Telegram webhook
// route and the menu feed.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/rcurve/mensabot/internal/profile"
	"github.com/rcurve/mensabot/server/bot"
	"github.com/rcurve/mensabot/server/feed"
)

// Server runs the HTTP routes and, in polling mode, the update consumer.
type Server struct {
	echo    *echo.Echo
	profile *profile.Profile
	bot     *bot.Bot
	feed    *feed.Builder
	logger  *slog.Logger
}

// New assembles the server routes.
func New(prof *profile.Profile, b *bot.Bot, feedBuilder *feed.Builder, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	s := &Server{
		echo:    e,
		profile: prof,
		bot:     b,
		feed:    feedBuilder,
		logger:  logger,
	}

	e.GET("/healthz", s.healthz)
	e.GET("/feed/menu.rss", s.menuFeed)
	if prof.WebhookMode {
		// Telegram proves its identity by knowing the bot token, the
		// same scheme the original webhook deployment used.
		e.POST("/telegram/:token", s.telegramWebhook)
	}

	return s
}

// Start serves HTTP and, in polling mode, consumes updates, until ctx is
// cancelled. It returns once everything has shut down.
func (s *Server) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf("%s:%d", s.profile.Addr, s.profile.Port)
		s.logger.Info("http server listening", slog.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})

	if !s.profile.WebhookMode {
		g.Go(func() error {
			return s.bot.Run(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ServeHTTP makes the server usable as a plain http.Handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) healthz(c echo.Context) error {
	return c.String(http.StatusOK, "Service ready.")
}

func (s *Server) menuFeed(c echo.Context) error {
	rss, err := s.feed.TodayRSS(c.Request().Context())
	if err != nil {
		s.logger.Error("feed rendering failed", slog.String("error", err.Error()))
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}

func (s *Server) telegramWebhook(c echo.Context) error {
	if c.Param("token") != s.profile.Token {
		return echo.NewHTTPError(http.StatusForbidden)
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(c.Request().Body).Decode(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed update")
	}

	// Telegram only wants a prompt 200; the answer goes out as a regular
	// bot message.
	go s.bot.HandleUpdate(context.Background(), update)
	return c.NoContent(http.StatusOK)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", c.Response().Status),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			return err
		}
	}
}
