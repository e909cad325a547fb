package filter

import "github.com/etfarb/arbscan/internal/domain"

// ConfidenceFilter is advisory: it flags signals whose evaluated
// confidence falls below MinConfidence in the Low < Medium < High
// ordering.
type ConfidenceFilter struct {
	MinConfidence domain.Level
}

// NewConfidenceFilter builds a ConfidenceFilter requiring at least Medium
// confidence.
func NewConfidenceFilter() *ConfidenceFilter {
	return &ConfidenceFilter{MinConfidence: domain.LevelMedium}
}

// Filter implements SignalFilter.
func (f *ConfidenceFilter) Filter(_ domain.Event, _ domain.HoldingEntry, s domain.TradingSignal) (bool, string) {
	if s.Confidence.Less(f.MinConfidence) {
		return true, "confidence below required minimum"
	}
	return false, ""
}

// IsRequired implements SignalFilter.
func (f *ConfidenceFilter) IsRequired() bool {
	return false
}

// Name implements SignalFilter.
func (f *ConfidenceFilter) Name() string {
	return "confidence_filter"
}
