package filter

import "github.com/etfarb/arbscan/internal/domain"

// RiskFilter is advisory: it flags signals whose chosen fund's holdings
// are concentrated in the top 10 beyond MaxTop10Ratio, or (when MinRank
// is positive) whose rank falls below that floor.
type RiskFilter struct {
	MaxTop10Ratio float64
	MinRank       int
}

// NewRiskFilter builds a RiskFilter with a 70% top-10 concentration cap
// and rank checking disabled (MinRank 0).
func NewRiskFilter() *RiskFilter {
	return &RiskFilter{MaxTop10Ratio: 0.70}
}

// Filter implements SignalFilter.
func (f *RiskFilter) Filter(_ domain.Event, h domain.HoldingEntry, s domain.TradingSignal) (bool, string) {
	if s.Top10Ratio > f.MaxTop10Ratio {
		return true, "top-10 holdings concentration too high"
	}
	if f.MinRank > 0 && h.Rank > f.MinRank {
		return true, "fund rank below required minimum"
	}
	return false, ""
}

// IsRequired implements SignalFilter.
func (f *RiskFilter) IsRequired() bool {
	return false
}

// Name implements SignalFilter.
func (f *RiskFilter) Name() string {
	return "risk_filter"
}
