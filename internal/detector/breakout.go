package detector

import (
	talib "github.com/markcheno/go-talib"

	"github.com/etfarb/arbscan/internal/clock"
	"github.com/etfarb/arbscan/internal/domain"
)

// Breakout fires when a quote's change percentage clears BreakoutPct
// without necessarily being a limit-up print. Validity additionally
// requires MinVolume, and — when the quote supplies a trailing price
// window — a non-negative rate-of-change over the window's lookback, using
// go-talib's Roc the way a momentum-confirmation filter would in a
// vendor charting library.
type Breakout struct {
	BreakoutPct  float64
	MinVolume    int64
	RocPeriod    int
}

// NewBreakout builds a Breakout detector with a 5% move and 10-period ROC
// lookback as defaults.
func NewBreakout() *Breakout {
	return &Breakout{BreakoutPct: 0.05, MinVolume: 0, RocPeriod: 10}
}

// Detect implements EventDetector.
func (d *Breakout) Detect(q domain.Quote) (*domain.Event, bool) {
	if q.ChangePct < d.BreakoutPct {
		return nil, false
	}
	e := &domain.Event{
		EventType:    domain.EventBreakout,
		SecurityCode: q.Code,
		SecurityName: q.Name,
		Price:        q.Price,
		ChangePct:    q.ChangePct,
		TriggerPrice: q.Price,
		TriggerTime:  clock.Active().Now(clock.CHINA),
		Volume:       q.Volume,
		Amount:       q.Amount,
		Metadata: map[string]any{
			"price_window": q.PriceWindow,
		},
	}
	return e, true
}

// IsValid implements EventDetector. A quote lacking a price window is
// validated on volume alone; one carrying a window must also show a
// non-negative momentum reading.
func (d *Breakout) IsValid(e domain.Event) bool {
	if e.Volume < d.MinVolume {
		return false
	}
	window, ok := e.Metadata["price_window"].([]float64)
	if !ok || len(window) <= d.RocPeriod {
		return true
	}
	roc := talib.Roc(window, d.RocPeriod)
	latest := roc[len(roc)-1]
	return latest >= 0
}
