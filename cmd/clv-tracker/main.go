package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/mkrebs/gridline/internal/clv"
	"github.com/mkrebs/gridline/internal/config"
	"github.com/mkrebs/gridline/internal/logger"
	"github.com/mkrebs/gridline/internal/resultsclient"
	"github.com/mkrebs/gridline/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.WithService(logger.Init(cfg.Log.Level, cfg.Log.Format), "clv-tracker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("postgres open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.WithError(err).Fatal("postgres connection failed")
	}

	source := resultsclient.New(
		cfg.Results.BaseURL,
		cfg.Results.APIKey,
		cfg.Results.RatePerSecond,
		cfg.Results.Burst,
	)

	resolver := clv.NewResolver(store.NewPostgres(db), source, cfg.PollInterval(), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- resolver.Run(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			log.WithError(err).Fatal("resolver failed")
		}
	}

	log.Info("clv tracker stopped")
}

func loadConfig(path string) *config.Config {
	if _, err := os.Stat(path); err != nil {
		cfg, err := config.Default()
		if err != nil {
			logger.Init("info", "text").WithError(err).Fatal("invalid default config")
		}
		return cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Init("info", "text").WithError(err).Fatal("config load failed")
	}
	return cfg
}
