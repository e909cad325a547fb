// Command replay drives the engine in backtest mode: it loads historical
// quote files through internal/historicalcache, optionally prints a Data
// Quality Preview, then runs a ReplayCoordinator across the requested
// date range, printing per-tick progress and a final signal summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/calendar"
	"github.com/etfarb/arbscan/internal/config"
	"github.com/etfarb/arbscan/internal/coordinator"
	"github.com/etfarb/arbscan/internal/domain"
	"github.com/etfarb/arbscan/internal/historicalcache"
	"github.com/etfarb/arbscan/internal/provider"
	"github.com/etfarb/arbscan/internal/quality"
	"github.com/etfarb/arbscan/internal/wiring"
)

func main() {
	configPath := flag.String("config", "", "path to arbscan.yaml")
	dataDir := flag.String("data-dir", "data/historical", "historical cache directory (internal/historicalcache layout)")
	start := flag.String("start", "", "backtest start date, YYYYMMDD")
	end := flag.String("end", "", "backtest end date, YYYYMMDD")
	granularity := flag.String("granularity", "daily", "daily, 5m, 15m, or 30m")
	skipPreview := flag.Bool("skip-quality-preview", false, "skip the pre-replay Data Quality Preview")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if err := run(logger, *configPath, *dataDir, *start, *end, calendar.Granularity(*granularity), *skipPreview); err != nil {
		logger.Fatal("replay run failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, configPath, dataDir, startStr, endStr string, granularity calendar.Granularity, skipPreview bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	backtestCfg := config.DefaultBacktestConfig(startStr, endStr)
	backtestCfg.Granularity = granularity
	if err := backtestCfg.Validate(); err != nil {
		return fmt.Errorf("invalid backtest config: %w", err)
	}

	start, err := time.Parse("20060102", backtestCfg.StartDate)
	if err != nil {
		return err
	}
	end, err := time.Parse("20060102", backtestCfg.EndDate)
	if err != nil {
		return err
	}

	store := historicalcache.NewStore(dataDir, 10*time.Minute, logger)

	quotes := make(map[string]map[string]domain.Quote)
	loadInto := func(kind historicalcache.Kind, code string) {
		loaded, err := store.Load(kind, code, backtestCfg.StartDate, backtestCfg.EndDate, granularity)
		if err != nil {
			logger.Warn("skipping security with no cached history",
				zap.String("code", code), zap.Error(err))
			return
		}
		for date, q := range loaded {
			if quotes[date] == nil {
				quotes[date] = make(map[string]domain.Quote)
			}
			quotes[date][code] = q
		}
	}
	for _, code := range cfg.Watchlist {
		loadInto(historicalcache.Stock, code)
	}
	for _, code := range cfg.WatchETFs {
		loadInto(historicalcache.ETF, code)
	}

	hist := provider.NewHistoricalProvider(quotes, nil)

	if !skipPreview {
		preview := quality.Generate(hist, cfg.Watchlist, cfg.WatchETFs, start, end, nil)
		logger.Info("data quality preview", zap.String("summary", preview.Summary()))
		if len(preview.Coverage.MissingDates) > 0 {
			logger.Warn("missing trading days in cached history", zap.Int("count", len(preview.Coverage.MissingDates)))
		}
	}

	tradingDays := calendar.Build(logger, start, end, nil)
	clock := calendar.New(tradingDays, granularity)

	exec, err := wiring.BuildChain(cfg.Chain)
	if err != nil {
		return fmt.Errorf("building chain: %w", err)
	}
	repo, err := wiring.BuildRepository(cfg.Repository, logger)
	if err != nil {
		return fmt.Errorf("building repository: %w", err)
	}
	sk, err := wiring.BuildSink(cfg.Alert, "", "arbscan.signals", logger)
	if err != nil {
		return fmt.Errorf("building sink: %w", err)
	}

	coord, err := coordinator.NewReplayCoordinator(exec, clock, hist, hist, hist, cfg.Watchlist, repo, sk, 8, logger)
	if err != nil {
		return fmt.Errorf("building replay coordinator: %w", err)
	}
	coord.SetProgress(func(completed, total int) {
		logger.Info("replay progress", zap.Int("completed", completed), zap.Int("total", total))
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	agg := coord.Run(ctx, len(tradingDays))
	logger.Info("replay complete",
		zap.Int("total_signals", agg.TotalSignals),
		zap.Int("securities_with_signals", len(agg.BySecurity)),
		zap.Int("etfs_recommended", len(agg.ByETF)))

	fmt.Fprintf(os.Stdout, "replay complete: %d signals across %d trading days\n", agg.TotalSignals, len(tradingDays))
	return nil
}
