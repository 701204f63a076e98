package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mkrebs/gridline/internal/clv"
	"github.com/mkrebs/gridline/internal/config"
	"github.com/mkrebs/gridline/internal/consumer"
	"github.com/mkrebs/gridline/internal/engine"
	"github.com/mkrebs/gridline/internal/logger"
	"github.com/mkrebs/gridline/internal/publisher"
	"github.com/mkrebs/gridline/internal/registry"
	"github.com/mkrebs/gridline/internal/risk"
	"github.com/mkrebs/gridline/internal/store"
	"github.com/mkrebs/gridline/pkg/models"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	metricsAddr := flag.String("metrics-addr", ":9185", "metrics listener address")
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.WithService(logger.Init(cfg.Log.Level, cfg.Log.Format), "edge-engine")

	sport := models.Sport(cfg.Sport)
	profile, ok := registry.Default().Get(sport)
	if !ok {
		log.WithField("sport", cfg.Sport).Fatal("unsupported sport")
	}
	if err := config.ValidateProfile(profile); err != nil {
		log.WithError(err).Fatal("invalid sport profile")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}
	defer redisClient.Close()

	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("postgres open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.WithError(err).Fatal("postgres connection failed")
	}

	promReg := prometheus.NewRegistry()
	metrics := engine.NewMetrics(promReg)

	ledger := risk.NewLedger(cfg.Week, cfg.Risk.WeeklyLimitPct, cfg.Risk.StopLossPct, cfg.Risk.RecoveryPct)
	sizer := risk.NewSizer(ledger, cfg.Risk.MaxBetPct)
	tracker := clv.NewTracker(cfg.CLV.TargetLow, cfg.CLV.TargetHigh)

	agg := engine.NewAggregator(profile)
	eng := engine.NewEngine(agg, cfg.Engine.Workers, metrics, log)

	pipeline := engine.NewPipeline(
		consumer.NewStreamConsumer(redisClient, cfg.Redis.ConsumerID, cfg.Redis.GroupName),
		publisher.NewStreamPublisher(redisClient),
		eng,
		sizer,
		tracker,
		store.NewPostgres(db),
		nil,
		cfg.Risk.Bankroll,
		log,
	)

	go serveMetrics(*metricsAddr, promReg, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- pipeline.Start(ctx, sport)
	}()

	log.WithField("sport", sport).WithField("week", cfg.Week).Info("edge engine started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			log.WithError(err).Fatal("pipeline failed")
		}
	}

	log.Info("edge engine stopped")
}

func serveMetrics(addr string, reg *prometheus.Registry, log *logrus.Entry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("metrics listener failed")
	}
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
