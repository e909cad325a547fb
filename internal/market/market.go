// Package market defines the engine's market-extension point: a
// pluggable Profile per exchange (limit-up threshold derivation, trading
// sessions). Only the CN profile is fully implemented; HK and US are
// framework placeholders, per the out-of-scope note on market-specific
// extensions beyond A-shares.
package market

import "errors"

// ErrNotImplemented is returned by a placeholder Profile's methods.
var ErrNotImplemented = errors.New("market: profile not implemented")

// Session is one trading window, local exchange time, "HH:MM" format.
type Session struct {
	Start string
	End   string
}

// Profile is the extension point a new exchange plugs into: how it
// derives a limit-up threshold for a security code, and what its
// trading sessions are.
type Profile interface {
	// Code is the profile's short market identifier, e.g. "cn", "hk", "us".
	Code() string

	// LimitUpThreshold derives the board-specific limit-up percentage for
	// securityCode. Markets without a limit-up mechanism, or not yet
	// implemented, return ErrNotImplemented.
	LimitUpThreshold(securityCode string) (float64, error)

	// TradingSessions lists the market's trading windows. Returns nil and
	// ErrNotImplemented for a placeholder profile.
	TradingSessions() ([]Session, error)
}
