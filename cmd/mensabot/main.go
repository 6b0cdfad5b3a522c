package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rcurve/mensabot/internal/profile"
	"github.com/rcurve/mensabot/plugin/openmensa"
	"github.com/rcurve/mensabot/server"
	"github.com/rcurve/mensabot/server/bot"
	"github.com/rcurve/mensabot/server/feed"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "mensabot",
	Short: "Telegram bot for the Mensa Academica meal plan",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile, err := loadProfile()
		if err != nil {
			slog.Error("invalid configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		setupLogger(instanceProfile)

		api, err := tgbotapi.NewBotAPI(instanceProfile.Token)
		if err != nil {
			slog.Error("failed to reach the Telegram API", slog.String("error", err.Error()))
			os.Exit(1)
		}

		canteen := openmensa.NewCanteen(
			instanceProfile.CanteenID,
			instanceProfile.CanteenName,
			openmensa.NewClient(instanceProfile.OpenMensaBaseURL),
			slog.Default(),
		)
		mensabot := bot.New(api, canteen, slog.Default())
		feedBuilder := feed.NewBuilder(canteen, instanceProfile.InstanceURL)
		srv := server.New(instanceProfile, mensabot, feedBuilder, slog.Default())

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		slog.Info("mensabot starting",
			slog.String("version", version),
			slog.String("mode", instanceProfile.Mode),
			slog.Int("canteen", instanceProfile.CanteenID),
			slog.Bool("webhook", instanceProfile.WebhookMode))

		if err := srv.Start(ctx); err != nil {
			slog.Error("server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
	},
}

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage the Telegram webhook registration",
}

var webhookSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Register the webhook URL with Telegram",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile, err := loadProfile()
		if err != nil {
			return err
		}
		if instanceProfile.WebhookURL == "" {
			return fmt.Errorf("MENSABOT_WEBHOOK_URL is not set")
		}

		api, err := tgbotapi.NewBotAPI(instanceProfile.Token)
		if err != nil {
			return err
		}
		webhook, err := tgbotapi.NewWebhook(instanceProfile.WebhookURL)
		if err != nil {
			return err
		}
		resp, err := api.Request(webhook)
		if err != nil {
			return err
		}
		fmt.Println(resp.Description)
		return nil
	},
}

var webhookClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the webhook registration",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile, err := loadProfile()
		if err != nil {
			return err
		}

		api, err := tgbotapi.NewBotAPI(instanceProfile.Token)
		if err != nil {
			return err
		}
		resp, err := api.Request(tgbotapi.DeleteWebhookConfig{})
		if err != nil {
			return err
		}
		fmt.Println(resp.Description)
		return nil
	},
}

func loadProfile() (*profile.Profile, error) {
	instanceProfile := &profile.Profile{
		Mode:        viper.GetString("mode"),
		Addr:        viper.GetString("addr"),
		Port:        viper.GetInt("port"),
		WebhookMode: viper.GetBool("webhook"),
		Version:     version,
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		return nil, err
	}
	return instanceProfile, nil
}

func setupLogger(instanceProfile *profile.Profile) {
	level := slog.LevelInfo
	if instanceProfile.IsDev() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func init() {
	rootCmd.PersistentFlags().String("mode", "", `mode of the bot, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "binding address for the http server")
	rootCmd.PersistentFlags().Int("port", 0, "binding port for the http server")
	rootCmd.Flags().Bool("webhook", false, "receive updates via webhook instead of long polling")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("webhook", rootCmd.Flags().Lookup("webhook")); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("mensabot")
	viper.AutomaticEnv()

	webhookCmd.AddCommand(webhookSetCmd, webhookClearCmd)
	rootCmd.AddCommand(webhookCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
