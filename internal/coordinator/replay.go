package coordinator

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/calendar"
	"github.com/etfarb/arbscan/internal/chain"
	"github.com/etfarb/arbscan/internal/provider"
	"github.com/etfarb/arbscan/internal/repository"
	"github.com/etfarb/arbscan/internal/sink"
)

// ProgressFunc receives (completed, total) trading-day counts as a replay
// run advances.
type ProgressFunc func(completed, total int)

// ReplayCoordinator drives a *calendar.SimulationClock across a
// historical QuoteProvider/HoldingProvider, running ChainExecutor for
// every security in Universe at each tick. Ported from
// original_source/backend/backtest/cn/engine.py's CNBacktestEngine.run:
// set the provider's current date, scan every stock, report progress,
// advance the clock.
type ReplayCoordinator struct {
	exec      *chain.Executor
	clock     *calendar.SimulationClock
	quotes    provider.QuoteProvider
	holdings  provider.HoldingProvider
	clockable provider.Clockable // usually the same object backing quotes
	universe  []string
	repo      repository.SignalRepository
	sink      sink.SignalSink

	pool     *ants.Pool
	logger   *zap.Logger
	progress ProgressFunc
}

// NewReplayCoordinator builds a ReplayCoordinator. poolSize bounds
// per-tick concurrency across Universe; clockable is typically the same
// *provider.HistoricalProvider passed as quotes.
func NewReplayCoordinator(
	exec *chain.Executor,
	clk *calendar.SimulationClock,
	quotes provider.QuoteProvider,
	holdings provider.HoldingProvider,
	clockable provider.Clockable,
	universe []string,
	repo repository.SignalRepository,
	sk sink.SignalSink,
	poolSize int,
	logger *zap.Logger,
) (*ReplayCoordinator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if poolSize <= 0 {
		poolSize = 8
	}
	r := &ReplayCoordinator{
		exec: exec, clock: clk, quotes: quotes, holdings: holdings, clockable: clockable,
		universe: universe, repo: repo, sink: sk, logger: logger,
	}
	pool, err := ants.NewPool(poolSize, ants.WithPanicHandler(func(p interface{}) {
		r.logger.Error("replay task panicked", zap.Any("panic", p))
	}))
	if err != nil {
		return nil, err
	}
	r.pool = pool
	return r, nil
}

// SetProgress installs a progress callback invoked after every tick.
func (r *ReplayCoordinator) SetProgress(fn ProgressFunc) {
	r.progress = fn
}

// Run drives the clock to completion, returning the cumulative
// aggregate across every tick. Every security in a tick must finish
// before the clock advances (spec §5's replay-mode ordering guarantee).
// totalTicks is reported verbatim to the progress callback as the
// denominator (the caller already knows it: the length of the trading
// calendar it built the clock from).
func (r *ReplayCoordinator) Run(ctx context.Context, totalTicks int) *Aggregate {
	agg := newAggregate()

	completed := 0
	for {
		select {
		case <-ctx.Done():
			r.pool.Release()
			return agg
		default:
		}

		r.clockable.SetCurrentDate(r.clock.Current().Format("20060102"))
		r.runTick(ctx, agg)

		completed++
		if r.progress != nil {
			r.progress(completed, totalTicks)
		}

		if !r.clock.HasNext() {
			break
		}
		r.clock.Advance(1)
	}

	r.pool.Release()
	return agg
}

func (r *ReplayCoordinator) runTick(ctx context.Context, agg *Aggregate) {
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, code := range r.universe {
		code := code
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			outcome, _ := r.exec.Execute(ctx, r.quotes, r.holdings, code)
			if !outcome.IsSignal() {
				return
			}
			r.repo.Save(*outcome.Signal)
			r.sink.Send(*outcome.Signal)

			mu.Lock()
			agg.add(*outcome.Signal)
			mu.Unlock()
		})
		if err != nil {
			r.logger.Error("failed to submit replay task", zap.String("security", code), zap.Error(err))
			wg.Done()
		}
	}

	wg.Wait()
}
