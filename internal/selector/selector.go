// Package selector implements the pluggable FundSelector strategies that
// choose a single ETF out of a security's eligible holders.
package selector

import "github.com/etfarb/arbscan/internal/domain"

// FundSelector picks one eligible ETF holding out of the set returned by
// a HoldingProvider for a triggering event. Ported from
// original_source/backend/arbitrage/domain/interfaces.py's
// IFundSelectionStrategy.
type FundSelector interface {
	Select(eligible []domain.HoldingEntry, e domain.Event) (*domain.HoldingEntry, bool)
	Reason(h domain.HoldingEntry) string
}
