package selector

import "github.com/etfarb/arbscan/internal/domain"

// BestLiquidity is a best-effort FundSelector. HoldingEntry carries no
// direct liquidity field, so this uses Top10Ratio as a proxy: a lower
// top-10 concentration implies a broader holder base and thus deeper
// secondary-market liquidity. Ties fall back to HighestWeight's rule.
type BestLiquidity struct{}

// Select implements FundSelector.
func (BestLiquidity) Select(eligible []domain.HoldingEntry, _ domain.Event) (*domain.HoldingEntry, bool) {
	if len(eligible) == 0 {
		return nil, false
	}
	best := eligible[0]
	for _, h := range eligible[1:] {
		switch {
		case h.Top10Ratio < best.Top10Ratio:
			best = h
		case h.Top10Ratio == best.Top10Ratio && h.Weight > best.Weight:
			best = h
		}
	}
	return &best, true
}

// Reason implements FundSelector.
func (BestLiquidity) Reason(h domain.HoldingEntry) string {
	return "lowest top-10 concentration among eligible funds (liquidity proxy)"
}
