// Command bot runs the WhatsApp command bot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gowabot/gowabot/internal/ai"
	"github.com/gowabot/gowabot/internal/bot"
	"github.com/gowabot/gowabot/internal/config"
	"github.com/gowabot/gowabot/internal/database"
	"github.com/gowabot/gowabot/internal/handlers"
	"github.com/gowabot/gowabot/internal/logger"
	"github.com/gowabot/gowabot/internal/media"
	"github.com/gowabot/gowabot/internal/router"
	"github.com/gowabot/gowabot/internal/services"
	"github.com/gowabot/gowabot/internal/whatsapp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format == "json")
	log.Info("Starting bot", "prefix", cfg.Bot.Prefix)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	client, err := whatsapp.NewClient(ctx, cfg.Session, log)
	if err != nil {
		log.Error("Failed to create WhatsApp client", "error", err)
		return 1
	}

	aiClient, err := ai.NewClient(ctx, cfg.AI, log)
	if err != nil {
		log.Error("Failed to create AI client", "error", err)
		return 1
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	messenger := whatsapp.NewMessenger(client)

	deps := handlers.Deps{
		Logger:    log,
		Config:    cfg,
		Messenger: messenger,
		Converter: media.NewFFmpeg(cfg.Media, log),
		Store:     store,
		AI:        aiClient,
		Shortener: services.NewShortener(httpClient, ""),
		TTS:       services.NewTTS(httpClient, ""),
		Weather:   services.NewWeather(httpClient, cfg.Weather),
		YouTube:   services.NewYouTube(),
		StartTime: time.Now(),
	}

	r := router.New(
		cfg.Bot.Prefix,
		handlers.RegisterAll(deps),
		handlers.NewUnknownHandler(deps),
		messenger,
		store,
		cfg.Bot.Messages.GeneralError,
		log,
	)

	scheduler, err := bot.NewScheduler(log, &cfg.Scheduler, bot.RegisterAllTasks(bot.TaskDeps{
		Logger: log,
		Config: cfg,
		Store:  store,
	}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	conn := whatsapp.NewConnManager(client, log)
	b := bot.New(client, conn, r, scheduler, log)

	if err := whatsapp.Login(ctx, client, log); err != nil {
		if ctx.Err() != nil || errors.Is(err, whatsapp.ErrPairingFailed) {
			log.Error("Failed to log in", "error", err)
			return 1
		}
		// A failed dial is not fatal; the run loop retries with backoff.
		log.Warn("Initial connection failed, retrying", "error", err)
		conn.RequestReconnect()
	}

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Bot stopped with error", "error", err)
		return 1
	}

	log.Info("Shutdown complete")
	return 0
}
