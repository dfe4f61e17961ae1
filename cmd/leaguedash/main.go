package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gridironlabs/leaguedash/internal/bot"
	"github.com/gridironlabs/leaguedash/internal/config"
	"github.com/gridironlabs/leaguedash/internal/fetch"
	"github.com/gridironlabs/leaguedash/internal/pipeline"
	"github.com/gridironlabs/leaguedash/internal/scheduler"
	"github.com/gridironlabs/leaguedash/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	client := fetch.NewClient(cfg.Data.BaseURL)
	hub := pipeline.NewHub(client, pipeline.DefaultConfigs(), cfg.Data.Freshness)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sendMessage func(string) error
	if cfg.Telegram.Token != "" {
		telegramBot, err := bot.NewTelegramBot(cfg.Telegram.Token, cfg.Telegram.ChatID, hub)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	sched, err := scheduler.NewScheduler(hub, cfg.Data.RefreshInterval, sendMessage)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(hub).Router(),
	}

	go func() {
		slog.Info("Starting HTTP server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
