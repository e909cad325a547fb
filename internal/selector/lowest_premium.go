package selector

import "github.com/etfarb/arbscan/internal/domain"

// LowestPremium is a best-effort FundSelector. HoldingEntry carries no
// premium field either (that lives on the ETF's own Quote, which this
// interface has no access to), so this falls back to rank as the
// available proxy: a lower (better) rank in the security's holder list
// correlates with a more actively arbitraged, tighter-tracking fund.
type LowestPremium struct{}

// Select implements FundSelector.
func (LowestPremium) Select(eligible []domain.HoldingEntry, _ domain.Event) (*domain.HoldingEntry, bool) {
	if len(eligible) == 0 {
		return nil, false
	}
	best := eligible[0]
	for _, h := range eligible[1:] {
		if h.Rank < best.Rank || (h.Rank == best.Rank && h.Weight > best.Weight) {
			best = h
		}
	}
	return &best, true
}

// Reason implements FundSelector.
func (LowestPremium) Reason(h domain.HoldingEntry) string {
	return "lowest rank among eligible funds (premium proxy)"
}
