package chain

import "github.com/etfarb/arbscan/internal/domain"

// Outcome is the typed result of one ChainExecutor.Execute call: exactly
// one of Signal or NoSignalReason is populated. This replaces the
// original's `(Optional[TradingSignal], reason)` tuple return with a
// discriminated result per spec §9's redesign guidance.
type Outcome struct {
	Signal         *domain.TradingSignal
	NoSignalReason string
}

// IsSignal reports whether the chain produced a signal.
func (o Outcome) IsSignal() bool {
	return o.Signal != nil
}

func signalOutcome(s domain.TradingSignal) Outcome {
	return Outcome{Signal: &s}
}

func noSignal(reason string) Outcome {
	return Outcome{NoSignalReason: reason}
}
