package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_notification_bot/internal/app"
	"homework_notification_bot/internal/infra/config"
	"homework_notification_bot/internal/infra/logger"
	"homework_notification_bot/internal/infra/metrics"
	"homework_notification_bot/internal/infra/practicum"
	"homework_notification_bot/internal/infra/scheduler"
	itelegram "homework_notification_bot/internal/infra/telegram"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Homework Notification Bot starting...")

	// Missing credentials are the only fatal condition: fail before any
	// network call is made.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Отсутствуют обязательные переменные окружения (PRACTICUM_TOKEN, TELEGRAM_TOKEN, TELEGRAM_CHAT_ID). Программа принудительно остановлена: %v", err)
	}

	if err := logger.Init(cfg); err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	lg := logger.Get()
	lg.Infof("Configuration loaded. LogLevel: %s, Environment: %s, PollInterval: %s", cfg.LogLevel, cfg.Environment, cfg.PollInterval)

	// The bot only sends messages; no update poller is started.
	bot, err := telebot.NewBot(telebot.Settings{
		Token: cfg.TelegramToken,
		OnError: func(err error, c telebot.Context) {
			lg.Errorf("telebot: %v", err)
		},
	})
	if err != nil {
		lg.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	telegramClient := itelegram.NewTelebotAdapter(bot)
	lg.Info("Telegram client initialized.")

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	apiClient := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.HTTPTimeout)
	poller := app.NewStatusPoller(apiClient, telegramClient, collector, lg, cfg.TelegramChatID, cfg.PollInterval)
	lg.Info("Status poller initialized.")

	var opsServer *http.Server
	if cfg.MetricsAddr != "" {
		opsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Router(registry)}
		go func() {
			lg.Infof("Ops server listening on %s (/metrics, /healthz)", cfg.MetricsAddr)
			if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				lg.Errorf("Ops server failed: %v", err)
			}
		}()
	}

	var digest *scheduler.DigestScheduler
	if cfg.CronSpecDigest != "" {
		digest = scheduler.NewDigestScheduler(poller, telegramClient, lg, cfg.TelegramChatID, cfg.CronSpecDigest)
		if err := digest.Start(); err != nil {
			lg.Fatalf("FATAL: Could not start digest scheduler: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Run(ctx)

	lg.Info("Application setup complete. Poller is running.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	lg.Info("Shutting down application...")
	cancel()
	if digest != nil {
		digest.Stop()
	}
	if opsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			lg.Errorf("Ops server shutdown failed: %v", err)
		}
	}
	lg.Info("Application shut down gracefully.")
}
