package provider

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/domain"
	arberrors "github.com/etfarb/arbscan/internal/errors"
)

// ResilientQuoteProvider wraps a QuoteProvider (typically a live vendor
// adapter) with a circuit breaker so a failing feed degrades to a
// ProviderTimeout error instead of hanging the tick budget. Grounded on the
// teacher's sony/gobreaker usage for outbound service calls.
type ResilientQuoteProvider struct {
	inner   QuoteProvider
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewResilientQuoteProvider wraps inner with a circuit breaker named name.
// The breaker trips after 5 consecutive failures within a 60s window and
// stays open for 10s before allowing a single trial request through.
func NewResilientQuoteProvider(name string, inner QuoteProvider, logger *zap.Logger) *ResilientQuoteProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("provider circuit breaker state change",
				zap.String("provider", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return &ResilientQuoteProvider{inner: inner, breaker: cb, logger: logger}
}

// Quote implements QuoteProvider. A tripped breaker or an inner failure
// both surface as a ProviderTimeout error, which the chain executor
// treats identically to NoDataError.
func (p *ResilientQuoteProvider) Quote(ctx context.Context, code string) (*domain.Quote, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.inner.Quote(ctx, code)
	})
	if err != nil {
		return nil, arberrors.Wrap(err, arberrors.ProviderTimeout, "quote provider call failed").
			WithDetail("code", code)
	}
	q, _ := result.(*domain.Quote)
	return q, nil
}

// ResilientHoldingProvider is the HoldingProvider counterpart of
// ResilientQuoteProvider, wrapping a HoldingProvider with the same
// circuit-breaking policy.
type ResilientHoldingProvider struct {
	inner   HoldingProvider
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewResilientHoldingProvider wraps inner with a circuit breaker named name.
func NewResilientHoldingProvider(name string, inner HoldingProvider, logger *zap.Logger) *ResilientHoldingProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("provider circuit breaker state change",
				zap.String("provider", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return &ResilientHoldingProvider{inner: inner, breaker: cb, logger: logger}
}

// HoldingsFor implements HoldingProvider.
func (p *ResilientHoldingProvider) HoldingsFor(ctx context.Context, securityCode string) ([]domain.HoldingEntry, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.inner.HoldingsFor(ctx, securityCode)
	})
	if err != nil {
		return nil, arberrors.Wrap(err, arberrors.ProviderTimeout, "holding provider call failed").
			WithDetail("security_code", securityCode)
	}
	entries, _ := result.([]domain.HoldingEntry)
	return entries, nil
}
