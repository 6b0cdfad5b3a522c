// Package profile carries the configuration to start the bot.
package profile

import (
	"net/url"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the bot process.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for the HTTP server
	Addr string
	// Port is the binding port for the HTTP server
	Port int
	// Version is the current version of the bot
	Version string

	// Token is the Telegram Bot API token. Required.
	Token string
	// WebhookMode switches update delivery from long polling to the
	// webhook route served by the HTTP server
	WebhookMode bool
	// WebhookURL is the public URL Telegram delivers updates to.
	// Required in webhook mode.
	WebhookURL string

	// CanteenID is the OpenMensa canteen identifier
	CanteenID int
	// CanteenName is the display name used in messages and the feed
	CanteenName string
	// OpenMensaBaseURL overrides the upstream API, mainly for tests
	OpenMensaBaseURL string
	// InstanceURL is the public URL of this instance, used as the feed link
	InstanceURL string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// FromEnv loads configuration from environment variables. Values already
// set on the profile (for example from flags) are kept.
func (p *Profile) FromEnv() {
	if p.Mode == "" {
		p.Mode = getEnvOrDefault("MENSABOT_MODE", "demo")
	}
	if p.Addr == "" {
		p.Addr = os.Getenv("MENSABOT_ADDR")
	}
	if p.Port == 0 {
		p.Port = getIntEnvOrDefault("MENSABOT_PORT", 8080)
	}
	if p.Token == "" {
		p.Token = os.Getenv("TELEGRAM_TOKEN")
	}
	if !p.WebhookMode {
		p.WebhookMode = os.Getenv("MENSABOT_WEBHOOK") == "true"
	}
	if p.WebhookURL == "" {
		p.WebhookURL = os.Getenv("MENSABOT_WEBHOOK_URL")
	}
	if p.CanteenID == 0 {
		p.CanteenID = getIntEnvOrDefault("MENSABOT_CANTEEN_ID", 187)
	}
	if p.CanteenName == "" {
		p.CanteenName = getEnvOrDefault("MENSABOT_CANTEEN_NAME", "Mensa Academica")
	}
	if p.OpenMensaBaseURL == "" {
		p.OpenMensaBaseURL = os.Getenv("MENSABOT_OPENMENSA_URL")
	}
	if p.InstanceURL == "" {
		p.InstanceURL = os.Getenv("MENSABOT_INSTANCE_URL")
	}
}

// Validate normalizes the profile and rejects configurations the bot
// cannot start with. A missing Telegram token is the one fatal condition.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Token == "" {
		return errors.New("TELEGRAM_TOKEN is not set")
	}

	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	if p.WebhookMode {
		if p.WebhookURL == "" {
			return errors.New("webhook mode requires MENSABOT_WEBHOOK_URL")
		}
		if _, err := url.ParseRequestURI(p.WebhookURL); err != nil {
			return errors.Wrapf(err, "invalid webhook url %s", p.WebhookURL)
		}
	}

	if p.CanteenID <= 0 {
		return errors.Errorf("invalid canteen id %d", p.CanteenID)
	}

	return nil
}
