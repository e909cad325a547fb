package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradingSignalRoundTripsThroughMap(t *testing.T) {
	s := TradingSignal{
		SignalID:       "SIG_20240115093000_600519",
		Timestamp:      time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		StockCode:      "600519",
		StockName:      "Kweichow Moutai",
		StockPrice:     1800.5,
		ChangePct:      10.0,
		LimitTime:      "09:31:05",
		SealAmount:     5_000_000,
		ETFCode:        "510300",
		ETFName:        "CSI 300 ETF",
		ETFWeight:      0.03,
		ETFPrice:       3.9,
		ETFPremium:     0.002,
		ETFDailyAmount: 120_000_000,
		ActualWeight:   0.028,
		WeightRank:     7,
		Top10Ratio:     0.45,
		Reason:         "limit up with high liquidity ETF",
		Confidence:     LevelHigh,
		RiskLevel:      LevelLow,
	}

	roundTripped, err := SignalFromMap(s.ToMap())
	require.NoError(t, err)
	assert.Equal(t, s, roundTripped)
}

func TestSignalFromMapRejectsUnparsableTimestamp(t *testing.T) {
	m := TradingSignal{SignalID: "x", StockCode: "y", ETFCode: "z"}.ToMap()
	m["timestamp"] = "not-a-timestamp"
	_, err := SignalFromMap(m)
	assert.Error(t, err)
}
