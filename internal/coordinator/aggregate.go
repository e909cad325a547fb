// Package coordinator drives ChainExecutor across a watchlist, in either
// a fixed-cadence live mode or a SimulationClock-paced replay mode.
package coordinator

import "github.com/etfarb/arbscan/internal/domain"

// Aggregate is the cumulative output of a coordinator run: the raw
// signal list plus the three groupings spec §4.7 mandates.
type Aggregate struct {
	Signals      []domain.TradingSignal
	BySecurity   map[string]int
	ByETF        map[string]int
	ByDate       map[string]int
	TotalSignals int
}

func newAggregate() *Aggregate {
	return &Aggregate{
		BySecurity: make(map[string]int),
		ByETF:      make(map[string]int),
		ByDate:     make(map[string]int),
	}
}

func (a *Aggregate) add(s domain.TradingSignal) {
	a.Signals = append(a.Signals, s)
	a.TotalSignals++
	a.BySecurity[s.StockCode]++
	a.ByETF[s.ETFCode]++
	a.ByDate[s.Timestamp.Format("20060102")]++
}
