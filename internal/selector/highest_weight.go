package selector

import "github.com/etfarb/arbscan/internal/domain"

// HighestWeight is the canonical FundSelector: it picks the ETF holding
// the largest weight of the triggering security, breaking ties by the
// lower (better) rank.
type HighestWeight struct{}

// Select implements FundSelector.
func (HighestWeight) Select(eligible []domain.HoldingEntry, _ domain.Event) (*domain.HoldingEntry, bool) {
	if len(eligible) == 0 {
		return nil, false
	}
	best := eligible[0]
	for _, h := range eligible[1:] {
		if h.Weight > best.Weight || (h.Weight == best.Weight && h.Rank < best.Rank) {
			best = h
		}
	}
	return &best, true
}

// Reason implements FundSelector.
func (HighestWeight) Reason(h domain.HoldingEntry) string {
	return "highest weight among eligible funds"
}
