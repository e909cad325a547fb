// Package sink delivers emitted trading signals to operators.
package sink

import "github.com/etfarb/arbscan/internal/domain"

// SignalSink is the delivery contract a ScanCoordinator pushes emitted
// signals through, distinct from SignalRepository's persistence contract.
// Ported from original_source/backend/signal/sender.py's
// NotificationSender.
type SignalSink interface {
	Send(signal domain.TradingSignal) bool
}
