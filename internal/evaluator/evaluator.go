// Package evaluator implements the pluggable SignalEvaluator strategies
// that assign categorical confidence/risk levels (and, via
// ConfidenceBreakdown, a weighted numeric score) to a candidate signal.
package evaluator

import (
	"github.com/etfarb/arbscan/internal/domain"
)

// SignalEvaluator assigns categorical confidence and risk to an event/fund
// pairing. Ported from original_source/backend/signal/interfaces.py's
// ISignalEvaluator.
type SignalEvaluator interface {
	Evaluate(e domain.Event, h domain.HoldingEntry) (confidence, risk domain.Level)
}
