package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etfarb/arbscan/internal/calendar"
	"github.com/etfarb/arbscan/internal/chain"
	"github.com/etfarb/arbscan/internal/clock"
	"github.com/etfarb/arbscan/internal/detector"
	"github.com/etfarb/arbscan/internal/domain"
	"github.com/etfarb/arbscan/internal/evaluator"
	"github.com/etfarb/arbscan/internal/filter"
	"github.com/etfarb/arbscan/internal/provider"
	"github.com/etfarb/arbscan/internal/repository"
	"github.com/etfarb/arbscan/internal/selector"
	"github.com/etfarb/arbscan/internal/sink"
)

func newChain() *chain.Executor {
	return chain.New(
		detector.NewLimitUp(),
		selector.HighestWeight{},
		[]filter.SignalFilter{filter.NewTimeFilterCN()},
		evaluator.NewDefault(),
	)
}

func TestLiveCoordinatorRunOnceCollectsSignals(t *testing.T) {
	defer clock.Reset()
	clock.SetActive(clock.Frozen{At: time.Date(2024, 1, 15, 13, 30, 0, 0, clock.CHINA)})

	mem := provider.NewMemoryProvider()
	mem.SetQuote("600519", domain.Quote{Code: "600519", Price: 1800, ChangePct: 0.10, IsLimitUp: true})
	mem.SetHoldings("600519", []domain.HoldingEntry{{ETFCode: "512690", ETFName: "Liquor ETF", Weight: 0.12, Rank: 1}})
	mem.SetQuote("512690", domain.Quote{Code: "512690", Price: 1.2, Amount: 200_000_000})
	mem.SetQuote("600036", domain.Quote{Code: "600036", Price: 30, ChangePct: 0.01, IsLimitUp: false})

	repo := repository.NewInMemoryRepository()
	c, err := NewLiveCoordinator(newChain(), mem, mem, repo, sink.NullSink{}, LiveConfig{
		Watchlist: []string{"600519", "600036"},
		PoolSize:  2,
	}, nil)
	require.NoError(t, err)
	defer c.Release()

	agg := c.RunOnce(context.Background())

	assert.Equal(t, 1, agg.TotalSignals)
	assert.Equal(t, 1, agg.BySecurity["600519"])
	assert.Equal(t, 1, repo.Count())
}

func TestReplayCoordinatorRunsUntilExhausted(t *testing.T) {
	cal := []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, clock.CHINA),
		time.Date(2024, 1, 16, 0, 0, 0, 0, clock.CHINA),
	}
	sc := calendar.New(cal, calendar.Daily)

	hist := provider.NewHistoricalProvider(
		map[string]map[string]domain.Quote{
			"20240115": {
				"600519": {Code: "600519", Price: 1800, ChangePct: 0.10, IsLimitUp: true},
				"512690": {Code: "512690", Price: 1.2, Amount: 200_000_000},
			},
			"20240116": {
				"600519": {Code: "600519", Price: 1700, ChangePct: 0.01, IsLimitUp: false},
				"512690": {Code: "512690", Price: 1.2, Amount: 200_000_000},
			},
		},
		map[string][]domain.HoldingEntry{
			"600519": {{ETFCode: "512690", ETFName: "Liquor ETF", Weight: 0.12, Rank: 1}},
		},
	)

	repo := repository.NewInMemoryRepository()

	var progressCalls []int
	rc, err := NewReplayCoordinator(
		chain.New(detector.NewLimitUp(), selector.HighestWeight{}, nil, evaluator.NewDefault()),
		sc, hist, hist, hist, []string{"600519"}, repo, sink.NullSink{}, 2, nil,
	)
	require.NoError(t, err)
	rc.SetProgress(func(completed, total int) {
		progressCalls = append(progressCalls, completed)
	})

	agg := rc.Run(context.Background(), len(cal))

	assert.Len(t, progressCalls, 2)
	assert.True(t, agg.TotalSignals <= 1)
}
