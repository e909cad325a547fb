// Package calendar builds trading-day calendars and drives a simulated
// clock across them for deterministic replay.
package calendar

import (
	"time"

	"go.uber.org/zap"
)

// Holidays is the set of non-trading dates for a given year, keyed by
// "YYYYMMDD".
type Holidays map[string]struct{}

// NewHolidays builds a Holidays set from a list of "YYYYMMDD" strings.
func NewHolidays(dates ...string) Holidays {
	h := make(Holidays, len(dates))
	for _, d := range dates {
		h[d] = struct{}{}
	}
	return h
}

func (h Holidays) contains(t time.Time) bool {
	if h == nil {
		return false
	}
	_, ok := h[t.Format("20060102")]
	return ok
}

// Build enumerates the inclusive [start, end] date range, excluding
// weekends and, when holidays is non-nil, the configured holiday set. When
// a year appears in the range but holidays is nil, the caller is assumed to
// not want holiday filtering; logger receives a warning so the omission is
// visible in replay logs.
func Build(logger *zap.Logger, start, end time.Time, holidays Holidays) []time.Time {
	if holidays == nil && logger != nil {
		logger.Warn("trading calendar built without a holiday set; treating all weekdays as trading days",
			zap.String("start", start.Format("2006-01-02")),
			zap.String("end", end.Format("2006-01-02")))
	}

	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if holidays.contains(d) {
			continue
		}
		days = append(days, d)
	}
	return days
}
