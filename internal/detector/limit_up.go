package detector

import (
	"github.com/etfarb/arbscan/internal/clock"
	"github.com/etfarb/arbscan/internal/domain"
)

// LimitUp fires whenever a quote reports IsLimitUp, carrying the seal
// order volume into the event's metadata. Ported from
// original_source/backend/arbitrage/strategies/event_detectors/__init__.py's
// limit-up branch.
type LimitUp struct {
	// MinChangePct is the minimum reported change for the event to be
	// considered valid (defends against a stale/incorrect IsLimitUp
	// flag on a quote whose change percentage doesn't actually clear the
	// board's limit-up threshold).
	MinChangePct float64
}

// NewLimitUp builds a LimitUp detector with the default 9.5% validity
// floor, chosen to sit just under the 10% mainboard threshold so genuine
// limit-up prints are never rejected by rounding.
func NewLimitUp() *LimitUp {
	return &LimitUp{MinChangePct: 0.095}
}

// Detect implements EventDetector.
func (d *LimitUp) Detect(q domain.Quote) (*domain.Event, bool) {
	if !q.IsLimitUp {
		return nil, false
	}
	e := &domain.Event{
		EventType:    domain.EventLimitUp,
		SecurityCode: q.Code,
		SecurityName: q.Name,
		Price:        q.Price,
		ChangePct:    q.ChangePct,
		TriggerPrice: q.Price,
		TriggerTime:  clock.Active().Now(clock.CHINA),
		Volume:       q.Volume,
		Amount:       q.Amount,
		Metadata: map[string]any{
			"seal_amount": q.SealAmount,
		},
	}
	return e, true
}

// IsValid implements EventDetector.
func (d *LimitUp) IsValid(e domain.Event) bool {
	return e.ChangePct >= d.MinChangePct
}
