package filter

import "github.com/etfarb/arbscan/internal/domain"

// LiquidityFilter rejects signals whose ETF's daily turnover falls below
// MinDailyAmount. The turnover lookup is a placeholder per spec §4.5 —
// callers populate TradingSignal with the ETF quote's Amount before
// running the filter chain, since SignalFilter.Filter has no provider
// access of its own.
type LiquidityFilter struct {
	MinDailyAmount float64
}

// NewLiquidityFilter builds a LiquidityFilter requiring at least 50
// million currency units of daily ETF turnover.
func NewLiquidityFilter() *LiquidityFilter {
	return &LiquidityFilter{MinDailyAmount: 50_000_000}
}

// Filter implements SignalFilter.
func (f *LiquidityFilter) Filter(_ domain.Event, _ domain.HoldingEntry, s domain.TradingSignal) (bool, string) {
	if s.ETFDailyAmount < f.MinDailyAmount {
		return true, "ETF daily turnover below minimum liquidity threshold"
	}
	return false, ""
}

// IsRequired implements SignalFilter.
func (f *LiquidityFilter) IsRequired() bool {
	return true
}

// Name implements SignalFilter.
func (f *LiquidityFilter) Name() string {
	return "liquidity_filter"
}
