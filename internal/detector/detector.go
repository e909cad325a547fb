// Package detector implements the pluggable EventDetector strategies that
// turn a raw Quote into a domain.Event candidate.
package detector

import "github.com/etfarb/arbscan/internal/domain"

// EventDetector detects a market event from a quote and validates
// candidate events against strategy-specific thresholds. Ported from
// original_source/backend/arbitrage/domain/interfaces.py's
// IEventDetectorStrategy.
type EventDetector interface {
	Detect(q domain.Quote) (*domain.Event, bool)
	IsValid(e domain.Event) bool
}
