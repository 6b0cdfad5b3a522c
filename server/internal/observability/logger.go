// Package observability carries structured logging context through the
// handling of a single Telegram update.
package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldRequestID is the field name for the per-update request ID.
	LogFieldRequestID = "request_id"
	// LogFieldChatID is the field name for the Telegram chat ID.
	LogFieldChatID = "chat_id"
	// LogFieldCommand is the field name for the bot command.
	LogFieldCommand = "command"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
)

// UpdateContext represents the context for one handled update with
// structured logging.
type UpdateContext struct {
	RequestID string
	ChatID    int64
	Command   string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewUpdateContext creates a new update context with a generated request ID.
func NewUpdateContext(logger *slog.Logger, chatID int64, command string) *UpdateContext {
	return &UpdateContext{
		RequestID: uuid.New().String(),
		ChatID:    chatID,
		Command:   command,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// Debug logs a debug message.
func (u *UpdateContext) Debug(msg string, attrs ...slog.Attr) {
	u.Logger.LogAttrs(context.Background(), slog.LevelDebug, msg, u.withBase(attrs)...)
}

// Info logs an info message.
func (u *UpdateContext) Info(msg string, attrs ...slog.Attr) {
	u.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, u.withBase(attrs)...)
}

// Warn logs a warning message.
func (u *UpdateContext) Warn(msg string, attrs ...slog.Attr) {
	u.Logger.LogAttrs(context.Background(), slog.LevelWarn, msg, u.withBase(attrs)...)
}

// Error logs an error message with the error.
func (u *UpdateContext) Error(msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	u.Logger.LogAttrs(context.Background(), slog.LevelError, msg, u.withBase(attrs)...)
}

// DurationMs returns the elapsed time since handling started, in
// milliseconds.
func (u *UpdateContext) DurationMs() int64 {
	return time.Since(u.StartTime).Milliseconds()
}

func (u *UpdateContext) withBase(attrs []slog.Attr) []slog.Attr {
	base := []slog.Attr{
		slog.String(LogFieldRequestID, u.RequestID),
		slog.Int64(LogFieldChatID, u.ChatID),
		slog.String(LogFieldCommand, u.Command),
	}
	return append(base, attrs...)
}
