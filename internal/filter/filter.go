// Package filter implements the pluggable SignalFilter chain that vets a
// candidate signal before it is emitted.
package filter

import "github.com/etfarb/arbscan/internal/domain"

// SignalFilter inspects a candidate signal and its triggering event/fund,
// optionally rejecting it. Ported from
// original_source/backend/arbitrage/domain/interfaces.py's
// ISignalFilterStrategy.
type SignalFilter interface {
	Filter(e domain.Event, h domain.HoldingEntry, s domain.TradingSignal) (reject bool, reason string)
	IsRequired() bool

	// Name is the filter's plugin name, as accepted in
	// ChainConfig.SignalFilters (e.g. "time_filter"), used to attribute a
	// rejection to the filter that raised it.
	Name() string
}
