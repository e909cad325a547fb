package market

import "github.com/etfarb/arbscan/internal/domain"

// CNProfile is the fully implemented A-share market profile: board-based
// limit-up thresholds and the hardcoded morning/afternoon session split
// the simulation clock also assumes.
type CNProfile struct{}

// Code implements Profile.
func (CNProfile) Code() string { return "cn" }

// LimitUpThreshold implements Profile via domain.LimitUpThreshold.
func (CNProfile) LimitUpThreshold(securityCode string) (float64, error) {
	return domain.LimitUpThreshold(securityCode), nil
}

// TradingSessions implements Profile with the A-share morning/afternoon
// split, lunch break excluded.
func (CNProfile) TradingSessions() ([]Session, error) {
	return []Session{
		{Start: "09:30", End: "11:30"},
		{Start: "13:00", End: "15:00"},
	}, nil
}
