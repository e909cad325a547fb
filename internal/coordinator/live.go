package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/etfarb/arbscan/internal/chain"
	"github.com/etfarb/arbscan/internal/obsmetrics"
	"github.com/etfarb/arbscan/internal/provider"
	"github.com/etfarb/arbscan/internal/repository"
	"github.com/etfarb/arbscan/internal/sink"
)

// LiveConfig parameterizes a LiveCoordinator.
type LiveConfig struct {
	Watchlist    []string
	PoolSize     int           // bounded worker count per tick, via ants
	TickInterval time.Duration // used when CronSpec is empty
	CronSpec     string        // optional robfig/cron expression, overrides TickInterval
	RatePerTick  float64       // ticks/second the coordinator is allowed to run at
}

// DefaultLiveConfig mirrors a once-a-minute scan cadence.
func DefaultLiveConfig(watchlist []string) LiveConfig {
	return LiveConfig{
		Watchlist:    watchlist,
		PoolSize:     8,
		TickInterval: time.Minute,
		RatePerTick:  1,
	}
}

// LiveCoordinator runs ChainExecutor once per security in Watchlist at a
// fixed cadence, fanning the tick's work out across a bounded ants.Pool.
// Grounded on spec §4.7's live-mode description and the teacher's worker
// pool (internal/architecture/fx/workerpool) and cron scheduler patterns
// (aristath-sentinel's internal/scheduler.Scheduler).
type LiveCoordinator struct {
	exec     *chain.Executor
	quotes   provider.QuoteProvider
	holdings provider.HoldingProvider
	repo     repository.SignalRepository
	sink     sink.SignalSink

	cfg     LiveConfig
	pool    *ants.Pool
	limiter *rate.Limiter
	logger  *zap.Logger
	metrics *obsmetrics.Metrics

	cron *cron.Cron
}

// SetMetrics attaches a Prometheus collector set; every scan after this
// call records its duration and outcome. Optional — a LiveCoordinator
// with no metrics attached behaves exactly as before.
func (c *LiveCoordinator) SetMetrics(m *obsmetrics.Metrics) {
	c.metrics = m
}

// NewLiveCoordinator builds a LiveCoordinator. The caller owns exec's
// component wiring (detector/selector/filters/evaluator); this package
// only schedules and fans out calls to it.
func NewLiveCoordinator(
	exec *chain.Executor,
	quotes provider.QuoteProvider,
	holdings provider.HoldingProvider,
	repo repository.SignalRepository,
	sk sink.SignalSink,
	cfg LiveConfig,
	logger *zap.Logger,
) (*LiveCoordinator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}

	c := &LiveCoordinator{exec: exec, quotes: quotes, holdings: holdings, repo: repo, sink: sk, cfg: cfg, logger: logger}

	pool, err := ants.NewPool(poolSize, ants.WithPanicHandler(func(p interface{}) {
		c.logger.Error("scan task panicked", zap.Any("panic", p))
	}))
	if err != nil {
		return nil, err
	}
	c.pool = pool

	ratePerTick := cfg.RatePerTick
	if ratePerTick <= 0 {
		ratePerTick = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(ratePerTick), 1)

	return c, nil
}

// Repository returns the signal repository this coordinator saves into,
// for callers that expose it through another surface (e.g. the
// operational HTTP status endpoint).
func (c *LiveCoordinator) Repository() repository.SignalRepository {
	return c.repo
}

// RunOnce scans every security in the watchlist concurrently, bounded by
// the worker pool, and returns the tick's aggregate. Per-security errors
// and panics are recovered and logged; they never abort the tick.
func (c *LiveCoordinator) RunOnce(ctx context.Context) *Aggregate {
	agg := newAggregate()
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, code := range c.cfg.Watchlist {
		code := code
		wg.Add(1)
		err := c.pool.Submit(func() {
			defer wg.Done()
			start := time.Now()
			outcome, log := c.exec.Execute(ctx, c.quotes, c.holdings, code)
			if c.metrics != nil {
				c.metrics.RecordScan(time.Since(start).Seconds())
			}
			for _, line := range log {
				c.logger.Debug("scan log", zap.String("security", code), zap.String("line", line))
			}
			if !outcome.IsSignal() {
				if c.metrics != nil {
					c.metrics.RecordSignalRejected(outcome.NoSignalReason)
				}
				return
			}
			c.repo.Save(*outcome.Signal)
			c.sink.Send(*outcome.Signal)
			if c.metrics != nil {
				c.metrics.RecordSignalEmitted(string(outcome.Signal.Confidence))
			}

			mu.Lock()
			agg.add(*outcome.Signal)
			mu.Unlock()
		})
		if err != nil {
			c.logger.Error("failed to submit scan task", zap.String("security", code), zap.Error(err))
			wg.Done()
		}
	}

	wg.Wait()
	return agg
}

// Run blocks, invoking RunOnce at the configured cadence until ctx is
// canceled. When CronSpec is set it drives the cadence via robfig/cron;
// otherwise a plain time.Ticker paced by the rate limiter is used.
func (c *LiveCoordinator) Run(ctx context.Context) error {
	if c.cfg.CronSpec != "" {
		return c.runCron(ctx)
	}
	return c.runTicker(ctx)
}

func (c *LiveCoordinator) runTicker(ctx context.Context) error {
	interval := c.cfg.TickInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.limiter.Wait(ctx); err != nil {
				return nil
			}
			c.RunOnce(ctx)
		}
	}
}

func (c *LiveCoordinator) runCron(ctx context.Context) error {
	c.cron = cron.New()
	_, err := c.cron.AddFunc(c.cfg.CronSpec, func() {
		if err := c.limiter.Wait(ctx); err != nil {
			return
		}
		c.RunOnce(ctx)
	})
	if err != nil {
		return err
	}
	c.cron.Start()
	<-ctx.Done()
	stopCtx := c.cron.Stop()
	<-stopCtx.Done()
	return nil
}

// Release tears down the worker pool. Call on shutdown.
func (c *LiveCoordinator) Release() {
	c.pool.Release()
}
