package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/olekukonko/tablewriter"

	"github.com/mkrebs/gridline/internal/clv"
	"github.com/mkrebs/gridline/internal/config"
	"github.com/mkrebs/gridline/internal/logger"
	"github.com/mkrebs/gridline/internal/store"
	"github.com/mkrebs/gridline/pkg/models"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.WithService(logger.Init(cfg.Log.Level, cfg.Log.Format), "clv-report")

	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("postgres open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.WithError(err).Fatal("postgres connection failed")
	}

	records, err := store.NewPostgres(db).AllCLVRecords(ctx)
	if err != nil {
		log.WithError(err).Fatal("load clv records failed")
	}

	printRecords(records)
	printSummary(clv.Compute(records, cfg.CLV.TargetLow, cfg.CLV.TargetHigh))
}

func printRecords(records []models.CLVRecord) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Game", "Side", "Open", "Close", "CLV", "Status", "Result", "ROI (u)")

	for _, r := range records {
		closing := "-"
		if r.ClosingLine != nil {
			closing = fmt.Sprintf("%+.1f", *r.ClosingLine)
		}
		clvPts := "-"
		if r.CLVPoints != nil {
			clvPts = fmt.Sprintf("%+.2f", *r.CLVPoints)
		}
		roi := "-"
		if r.Status == models.CLVResolved {
			roi = fmt.Sprintf("%+.2f", r.ROI)
		}

		table.Append(
			r.GameID,
			string(r.Side),
			fmt.Sprintf("%+.1f", r.OpeningLine),
			closing,
			clvPts,
			string(r.Status),
			string(r.Result),
			roi,
		)
	}

	table.Render()
}

func printSummary(s clv.Summary) {
	fmt.Printf("\nTracked %d bets: %d pending, %d resolved\n", s.Tracked, s.Pending, s.Resolved)
	if s.Wins+s.Losses > 0 {
		fmt.Printf("Record %d-%d-%d (%.1f%% win rate), total ROI %+.2f units\n",
			s.Wins, s.Losses, s.Pushes, s.WinRate*100, s.TotalROI)
	}
	if s.WithCLV > 0 {
		band := "below"
		if s.InTargetBand {
			band = "inside"
		} else if s.AvgCLV > s.TargetHigh {
			band = "above"
		}
		fmt.Printf("Average CLV %+.2f points over %d bets (std dev %.2f), %s target band [%.1f, %.1f]\n",
			s.AvgCLV, s.WithCLV, s.CLVStdDev, band, s.TargetLow, s.TargetHigh)
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
