package filter

import (
	"fmt"
	"time"

	"github.com/etfarb/arbscan/internal/clock"
	"github.com/etfarb/arbscan/internal/domain"
)

// DefaultMinTimeToClose is the default floor, in seconds, below which
// TimeFilterCN rejects a signal as too close to the 15:00 close.
const DefaultMinTimeToClose = 30 * 60

// TimeFilterCN rejects signals generated outside 09:30-15:00 China time,
// or within MinTimeToClose of the 15:00 close. Ported from
// original_source/backend/arbitrage/cn/strategies/signal_filters/time_filter.py.
type TimeFilterCN struct {
	MinTimeToClose int
}

// NewTimeFilterCN builds a TimeFilterCN with DefaultMinTimeToClose.
func NewTimeFilterCN() *TimeFilterCN {
	return &TimeFilterCN{MinTimeToClose: DefaultMinTimeToClose}
}

// Filter implements SignalFilter.
func (f *TimeFilterCN) Filter(_ domain.Event, _ domain.HoldingEntry, _ domain.TradingSignal) (bool, string) {
	timeToClose := f.timeToCloseSeconds()

	if timeToClose < 0 {
		return true, "not in trading hours"
	}
	if timeToClose < f.MinTimeToClose {
		minutes := timeToClose / 60
		return true, fmt.Sprintf("only %d minutes to close", minutes)
	}
	return false, ""
}

func (f *TimeFilterCN) timeToCloseSeconds() int {
	now := clock.Active().Now(clock.CHINA)
	if now.Hour() < 9 || (now.Hour() == 9 && now.Minute() < 30) || now.Hour() >= 15 {
		return -1
	}
	closeTime := time.Date(now.Year(), now.Month(), now.Day(), 15, 0, 0, 0, now.Location())
	return int(closeTime.Sub(now).Seconds())
}

// IsRequired implements SignalFilter.
func (f *TimeFilterCN) IsRequired() bool {
	return true
}

// Name implements SignalFilter.
func (f *TimeFilterCN) Name() string {
	return "time_filter"
}
