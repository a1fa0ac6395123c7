package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/app"
	"github.com/Spok95/hifz-contest/internal/auth"
	"github.com/Spok95/hifz-contest/internal/config"
	"github.com/Spok95/hifz-contest/internal/db"
	"github.com/Spok95/hifz-contest/internal/jobs"
	"github.com/Spok95/hifz-contest/internal/livestats"
	"github.com/Spok95/hifz-contest/internal/logging"
	"github.com/Spok95/hifz-contest/internal/observability"
	"github.com/Spok95/hifz-contest/internal/tg"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()
	logger := lg.Base

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		logger.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	store := db.NewStore(database)
	board := livestats.NewBoard()

	var notifier livestats.Notifier = tg.Nop{}
	if cfg.NotifierEnabled() {
		n, err := tg.NewNotifier(cfg.TGBotToken, cfg.TGChatID, lg.Component("telegram"))
		if err != nil {
			logger.Warn("telegram notifier disabled", zap.Error(err))
		} else {
			notifier = n
		}
	}

	runner := jobs.New(ctx, lg.Component("jobs"))
	refresher := livestats.NewRefresher(store, board, notifier, lg.Component("live"), cfg.Location)
	runner.Every(cfg.LiveRefresh, "live_refresh", refresher.Refresh)

	srv := app.NewServer(app.Deps{
		Store:        store,
		Tokens:       auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Board:        board,
		Log:          lg.Component("http"),
		DeleteSecret: cfg.DeleteSecret,
		LoginRate:    cfg.LoginRate,
		Location:     cfg.Location,
		TrustProxy:   cfg.TrustProxy,
	})
	app.StartHTTP(ctx, cfg.HTTPAddr, srv.Routes(), logger)

	logger.Info("hifz contest started", zap.String("version", version), zap.String("env", cfg.Env))
	<-ctx.Done()
	logger.Info("shutting down")
	runner.Wait()
}
