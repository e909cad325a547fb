// Package provider defines the point-in-time market data contracts the
// rest of the engine depends on, plus in-memory and historical reference
// adapters.
package provider

import (
	"context"

	"github.com/etfarb/arbscan/internal/domain"
)

// QuoteProvider resolves a point-in-time quote for a security or ETF
// code. Implementations return (nil, nil) when no record exists for code
// at the provider's current instant — callers treat this as NoDataError,
// not as a Go error.
type QuoteProvider interface {
	Quote(ctx context.Context, code string) (*domain.Quote, error)
}

// HoldingProvider returns the ETFs holding a given security at the
// provider's current instant, sorted by weight descending.
type HoldingProvider interface {
	HoldingsFor(ctx context.Context, securityCode string) ([]domain.HoldingEntry, error)
}

// Clockable is implemented by providers whose "current instant" can be
// repositioned, as replay mode requires when driving a SimulationClock.
// date uses the calendar's "YYYYMMDD" key format.
type Clockable interface {
	SetCurrentDate(date string)
}
