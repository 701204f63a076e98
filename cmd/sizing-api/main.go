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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkrebs/gridline/internal/broadcaster"
	"github.com/mkrebs/gridline/internal/clv"
	"github.com/mkrebs/gridline/internal/config"
	"github.com/mkrebs/gridline/internal/handlers"
	"github.com/mkrebs/gridline/internal/logger"
	"github.com/mkrebs/gridline/internal/registry"
	"github.com/mkrebs/gridline/internal/risk"
	"github.com/mkrebs/gridline/internal/store"
	"github.com/mkrebs/gridline/pkg/contracts"
	"github.com/mkrebs/gridline/pkg/models"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.WithService(logger.Init(cfg.Log.Level, cfg.Log.Format), "sizing-api")

	profile, ok := registry.Default().Get(models.Sport(cfg.Sport))
	if !ok {
		log.WithField("sport", cfg.Sport).Fatal("unsupported sport")
	}
	if err := config.ValidateProfile(profile); err != nil {
		log.WithError(err).Fatal("invalid sport profile")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var recStore contracts.RecommendationStore
	if cfg.DB.DSN != "" {
		db, err := sql.Open("postgres", cfg.DB.DSN)
		if err != nil {
			log.WithError(err).Fatal("postgres open failed")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.WithError(err).Warn("postgres unreachable, persistence disabled")
		} else {
			recStore = store.NewPostgres(db)
		}
	}

	ledger := risk.NewLedger(cfg.Week, cfg.Risk.WeeklyLimitPct, cfg.Risk.StopLossPct, cfg.Risk.RecoveryPct)
	sizer := risk.NewSizer(ledger, cfg.Risk.MaxBetPct)
	tracker := clv.NewTracker(cfg.CLV.TargetLow, cfg.CLV.TargetHigh)

	hub := broadcaster.NewHub(log)
	go hub.Run(ctx)

	h := handlers.New(sizer, tracker, profile, recStore, hub, cfg.Risk.Bankroll, log)

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:3001"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	r.Get("/ws", hub.ServeWS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/size", h.SizeBet)
		r.Post("/kelly", h.Kelly)
		r.Post("/half-point", h.HalfPoint)
		r.Get("/ledger", h.Ledger)
		r.Post("/ledger/reset", h.ResetLedger)
		r.Get("/clv/summary", h.CLVSummary)
		r.Get("/clv/pending", h.CLVPending)
		r.Get("/clv/resolved", h.CLVResolved)
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTP.Addr).Info("sizing API started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}

	log.Info("sizing API stopped")
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
