// Command scanner runs the engine in live mode: a ScanCoordinator polls
// the configured watchlist at a fixed cadence and exposes the
// operational HTTP surface (health, metrics, status) alongside it.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/config"
	"github.com/etfarb/arbscan/internal/coordinator"
	"github.com/etfarb/arbscan/internal/httpapi"
	"github.com/etfarb/arbscan/internal/market"
	"github.com/etfarb/arbscan/internal/obsmetrics"
	"github.com/etfarb/arbscan/internal/provider"
	"github.com/etfarb/arbscan/internal/wiring"
)

func main() {
	configPath := flag.String("config", "", "path to arbscan.yaml (defaults to ARBSCAN_CONFIG_PATH or config/arbscan.yaml)")
	flag.Parse()

	app := fx.New(
		fx.Supply(*configPath),
		fx.Provide(
			newLogger,
			func(path string) (*config.Config, error) { return config.Load(path) },
			newQuoteProvider,
			newMetricsRegistry,
			newLiveCoordinator,
			newHTTPServer,
		),
		fx.Invoke(reportMarketRegistrySize, registerHTTPServerLifecycle, registerCoordinatorLifecycle),
		fx.NopLogger,
	)
	app.Run()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Logging.JSON {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newQuoteProvider wires the one reference QuoteProvider/HoldingProvider
// this module ships (provider.MemoryProvider); a real deployment injects
// its own vendor-backed implementation of the same contracts.
func newQuoteProvider() *provider.MemoryProvider {
	return provider.NewMemoryProvider()
}

func newMetricsRegistry(logger *zap.Logger) (*prometheus.Registry, *obsmetrics.Metrics) {
	registry := prometheus.NewRegistry()
	return registry, obsmetrics.New(registry, logger)
}

func newLiveCoordinator(
	cfg *config.Config,
	mp *provider.MemoryProvider,
	metrics *obsmetrics.Metrics,
	logger *zap.Logger,
) (*coordinator.LiveCoordinator, error) {
	exec, err := wiring.BuildChain(cfg.Chain)
	if err != nil {
		return nil, err
	}
	repo, err := wiring.BuildRepository(cfg.Repository, logger)
	if err != nil {
		return nil, err
	}
	sk, err := wiring.BuildSink(cfg.Alert, "", "arbscan.signals", logger)
	if err != nil {
		return nil, err
	}

	liveCfg := coordinator.DefaultLiveConfig(cfg.Watchlist)
	coord, err := coordinator.NewLiveCoordinator(exec, mp, mp, repo, sk, liveCfg, logger)
	if err != nil {
		return nil, err
	}
	coord.SetMetrics(metrics)
	return coord, nil
}

func newHTTPServer(cfg *config.Config, coord *coordinator.LiveCoordinator, registry *prometheus.Registry, logger *zap.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	srv := httpapi.New("arbscan-scanner", "1.0.0", coord.Repository(), registry, logger)
	srv.RegisterRoutes(router)
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}
}

func reportMarketRegistrySize(metrics *obsmetrics.Metrics, logger *zap.Logger) {
	registry := market.NewRegistry(logger)
	metrics.SetPluginRegistrySize("market-profiles", registry.Count())
}

func registerHTTPServerLifecycle(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info("starting operational HTTP surface", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("http server stopped unexpectedly", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}

func registerCoordinatorLifecycle(lc fx.Lifecycle, coord *coordinator.LiveCoordinator, logger *zap.Logger) {
	var cancel context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, c := context.WithCancel(context.Background())
			cancel = c
			go func() {
				if err := coord.Run(ctx); err != nil {
					logger.Error("live coordinator stopped with error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			if cancel != nil {
				cancel()
			}
			coord.Release()
			return nil
		},
	})
}
