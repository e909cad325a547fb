package provider

import (
	"context"
	"sort"

	"github.com/etfarb/arbscan/internal/domain"
)

// HistoricalProvider replays pre-loaded quotes and holdings, keyed by the
// "YYYYMMDD" calendar date, the way replay mode requires. Grounded on
// original_source/backend/backtest/cn/data_provider.py
// (BacktestDataProvider: quotes keyed by date then code, holdings keyed
// by security code, current-date cursor set by the caller each tick) and
// original_source/backend/backtest/cn/adapters/holding_provider.py for
// the Clockable "set current instant, then query" adapter shape.
type HistoricalProvider struct {
	quotes      map[string]map[string]domain.Quote
	holdings    map[string][]domain.HoldingEntry
	currentDate string
}

// NewHistoricalProvider builds a HistoricalProvider over quotes (date ->
// code -> Quote) and holdings (security code -> ETFs holding it, sorted
// by weight descending).
func NewHistoricalProvider(quotes map[string]map[string]domain.Quote, holdings map[string][]domain.HoldingEntry) *HistoricalProvider {
	sorted := make(map[string][]domain.HoldingEntry, len(holdings))
	for code, entries := range holdings {
		cp := make([]domain.HoldingEntry, len(entries))
		copy(cp, entries)
		sort.Slice(cp, func(i, j int) bool { return cp[i].Weight > cp[j].Weight })
		sorted[code] = cp
	}
	return &HistoricalProvider{quotes: quotes, holdings: sorted}
}

// SetCurrentDate implements Clockable. Replay mode calls this once per
// tick before fanning the universe out.
func (p *HistoricalProvider) SetCurrentDate(date string) {
	p.currentDate = date
}

// AvailableDates returns the sorted set of dates with quote coverage.
func (p *HistoricalProvider) AvailableDates() []string {
	dates := make([]string, 0, len(p.quotes))
	for d := range p.quotes {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Quote implements QuoteProvider against the provider's current date.
func (p *HistoricalProvider) Quote(_ context.Context, code string) (*domain.Quote, error) {
	if p.currentDate == "" {
		return nil, nil
	}
	day, ok := p.quotes[p.currentDate]
	if !ok {
		return nil, nil
	}
	q, ok := day[code]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

// HoldingsFor implements HoldingProvider. Historical holdings are not
// date-sensitive in this reference implementation, matching the original
// backtest provider's simplification.
func (p *HistoricalProvider) HoldingsFor(_ context.Context, securityCode string) ([]domain.HoldingEntry, error) {
	return p.holdings[securityCode], nil
}

// Summary reports the covered date range and record counts, for the
// ScanCoordinator's replay-mode aggregation output.
type Summary struct {
	DatesCovered     int
	SecuritiesWithHoldings int
	FirstDate        string
	LastDate         string
}

// ObservedDates returns the sorted set of dates on which code has a
// quote record, for coverage reporting ahead of a replay run.
func (p *HistoricalProvider) ObservedDates(code string) []string {
	dates := make([]string, 0)
	for d, day := range p.quotes {
		if _, ok := day[code]; ok {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

// DataSummary mirrors BacktestDataProvider.get_data_summary().
func (p *HistoricalProvider) DataSummary() Summary {
	dates := p.AvailableDates()
	s := Summary{
		DatesCovered:           len(p.quotes),
		SecuritiesWithHoldings: len(p.holdings),
	}
	if len(dates) > 0 {
		s.FirstDate = dates[0]
		s.LastDate = dates[len(dates)-1]
	}
	return s
}
