package sink

import "github.com/etfarb/arbscan/internal/domain"

// NullSink discards every signal. Ported from sender.py's NullSender:
// used for tests or to fully disable notification.
type NullSink struct{}

// Send implements SignalSink: always succeeds, does nothing.
func (NullSink) Send(domain.TradingSignal) bool {
	return true
}
