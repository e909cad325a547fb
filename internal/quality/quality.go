// Package quality implements the Data Quality Preview: an optional
// pre-replay report on how much historical coverage a configured date
// range and universe actually has, so a backtest operator can judge
// whether results will be trustworthy before spending the run.
package quality

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/etfarb/arbscan/internal/calendar"
	"github.com/etfarb/arbscan/internal/provider"
)

// Classification buckets a single security's observed-vs-expected
// coverage ratio.
type Classification string

const (
	Complete Classification = "complete"
	Partial  Classification = "partial"
	Missing  Classification = "missing"
)

func classify(rate float64) Classification {
	switch {
	case rate >= 0.90:
		return Complete
	case rate >= 0.50:
		return Partial
	default:
		return Missing
	}
}

// SecurityStatus reports one security's coverage over the previewed
// range.
type SecurityStatus struct {
	Code           string
	Observed       int
	Expected       int
	Rate           float64
	Classification Classification
}

// Coverage summarizes trading-day coverage across the previewed range.
type Coverage struct {
	TotalTradingDays int
	CoveredDays      int
	PerMonth         map[string]float64 // "200601" -> fraction of that month's trading days covered
	MissingDates     []string
}

// Preview is the full Data Quality Preview report.
type Preview struct {
	Coverage       Coverage
	Stocks         []SecurityStatus
	ETFs           []SecurityStatus
	CompositeScore float64
	Grade          string
}

// Generate builds a Preview for hist over [start, end], evaluating
// stocks and etfs against the trading calendar built from holidays.
func Generate(hist *provider.HistoricalProvider, stocks, etfs []string, start, end time.Time, holidays calendar.Holidays) Preview {
	tradingDays := calendar.Build(nil, start, end, holidays)
	totalDays := len(tradingDays)

	available := make(map[string]struct{})
	for _, d := range hist.AvailableDates() {
		available[d] = struct{}{}
	}

	monthTotal := make(map[string]int)
	monthCovered := make(map[string]int)
	covered := 0
	missing := make([]string, 0)
	for _, d := range tradingDays {
		key := d.Format("20060102")
		month := d.Format("200601")
		monthTotal[month]++
		if _, ok := available[key]; ok {
			covered++
			monthCovered[month]++
		} else {
			missing = append(missing, key)
		}
	}

	perMonth := make(map[string]float64, len(monthTotal))
	for month, total := range monthTotal {
		if total == 0 {
			continue
		}
		perMonth[month] = float64(monthCovered[month]) / float64(total)
	}

	stockStatuses := statusesFor(hist, stocks, tradingDays)
	etfStatuses := statusesFor(hist, etfs, tradingDays)

	daysCoverage := rateOf(covered, totalDays)
	stocksCompleteRate := completeRate(stockStatuses)
	etfsCompleteRate := completeRate(etfStatuses)

	// 40*stocks_complete_rate + 30*etfs_complete_rate + 30*days_coverage,
	// expressed as a weighted mean of the three fractions scaled back to
	// a 0-100 composite (weights already sum to 100).
	composite := 100 * stat.Mean(
		[]float64{stocksCompleteRate, etfsCompleteRate, daysCoverage},
		[]float64{40, 30, 30},
	)

	return Preview{
		Coverage: Coverage{
			TotalTradingDays: totalDays,
			CoveredDays:      covered,
			PerMonth:         perMonth,
			MissingDates:     missing,
		},
		Stocks:         stockStatuses,
		ETFs:           etfStatuses,
		CompositeScore: composite,
		Grade:          grade(composite),
	}
}

func statusesFor(hist *provider.HistoricalProvider, codes []string, tradingDays []time.Time) []SecurityStatus {
	statuses := make([]SecurityStatus, 0, len(codes))
	for _, code := range codes {
		observedSet := make(map[string]struct{})
		for _, d := range hist.ObservedDates(code) {
			observedSet[d] = struct{}{}
		}
		observed := 0
		for _, d := range tradingDays {
			if _, ok := observedSet[d.Format("20060102")]; ok {
				observed++
			}
		}
		rate := rateOf(observed, len(tradingDays))
		statuses = append(statuses, SecurityStatus{
			Code:           code,
			Observed:       observed,
			Expected:       len(tradingDays),
			Rate:           rate,
			Classification: classify(rate),
		})
	}
	return statuses
}

func rateOf(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func completeRate(statuses []SecurityStatus) float64 {
	if len(statuses) == 0 {
		return 0
	}
	complete := 0
	for _, s := range statuses {
		if s.Classification == Complete {
			complete++
		}
	}
	return float64(complete) / float64(len(statuses))
}

func grade(score float64) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

// Summary renders a one-line human-readable digest, for CLI/log output.
func (p Preview) Summary() string {
	return fmt.Sprintf("quality=%s score=%.1f days=%d/%d stocks=%d etfs=%d",
		p.Grade, p.CompositeScore, p.Coverage.CoveredDays, p.Coverage.TotalTradingDays,
		len(p.Stocks), len(p.ETFs))
}
