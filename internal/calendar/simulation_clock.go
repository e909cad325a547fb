package calendar

import "time"

// Granularity is the step size a SimulationClock advances by.
type Granularity string

const (
	Daily Granularity = "daily"
	Min5  Granularity = "5m"
	Min15 Granularity = "15m"
	Min30 Granularity = "30m"
)

// deltaMinutes returns the intraday step size in minutes, or 0 for Daily.
func (g Granularity) deltaMinutes() int {
	switch g {
	case Min5:
		return 5
	case Min15:
		return 15
	case Min30:
		return 30
	default:
		return 0
	}
}

// IsDaily reports whether g steps whole trading days rather than intraday
// bars.
func (g Granularity) IsDaily() bool {
	return g == Daily || g == ""
}

var (
	morningStart = clockTime(9, 30)
	morningEnd   = clockTime(11, 30)
	afternoonStart = clockTime(13, 0)
	afternoonEnd   = clockTime(15, 0)
)

// clockTime builds a time-of-day comparator value on a fixed reference
// date so only hour/minute/second matter in comparisons.
func clockTime(h, m int) time.Time {
	return time.Date(0, 1, 1, h, m, 0, 0, time.UTC)
}

func timeOfDay(t time.Time) time.Time {
	return time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// SimulationClock is a stateful cursor over a trading calendar, stepping by
// a fixed Granularity and skipping the lunch break.
type SimulationClock struct {
	calendar    []time.Time
	index       int
	current     time.Time
	granularity Granularity
}

// New builds a SimulationClock positioned at the first entry of calendar.
// calendar must be non-empty and sorted ascending (as produced by Build).
func New(cal []time.Time, granularity Granularity) *SimulationClock {
	sc := &SimulationClock{
		calendar:    cal,
		granularity: granularity,
	}
	sc.Reset()
	return sc
}

// Current returns the clock's current instant.
func (sc *SimulationClock) Current() time.Time {
	return sc.current
}

// Index returns the clock's position in the trading calendar.
func (sc *SimulationClock) Index() int {
	return sc.index
}

// Reset restores the clock to index 0 (09:30 of the first trading day for
// intraday granularities, the bare date for Daily).
func (sc *SimulationClock) Reset() {
	sc.index = 0
	if len(sc.calendar) == 0 {
		return
	}
	day := sc.calendar[0]
	if sc.granularity.IsDaily() {
		sc.current = day
		return
	}
	sc.current = atTimeOfDay(day, morningStart)
}

func atTimeOfDay(day, tod time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, day.Location())
}

// Advance steps the clock forward by n units of its granularity.
func (sc *SimulationClock) Advance(n int) time.Time {
	if len(sc.calendar) == 0 {
		return sc.current
	}
	if sc.granularity.IsDaily() {
		sc.index = min(sc.index+n, len(sc.calendar)-1)
		sc.current = sc.calendar[sc.index]
		return sc.current
	}
	sc.advanceMinutes(n)
	return sc.current
}

func (sc *SimulationClock) advanceMinutes(n int) {
	deltaMinutes := sc.granularity.deltaMinutes() * n
	tentative := sc.current.Add(time.Duration(deltaMinutes) * time.Minute)

	crossesDay := tentative.Year() != sc.current.Year() ||
		tentative.YearDay() != sc.current.YearDay()

	if crossesDay || !timeOfDay(tentative).Before(afternoonEnd) {
		sc.index = min(sc.index+1, len(sc.calendar)-1)
		sc.current = atTimeOfDay(sc.calendar[sc.index], morningStart)
		return
	}

	curTOD := timeOfDay(sc.current)
	tentTOD := timeOfDay(tentative)
	if curTOD.Before(afternoonStart) && !tentTOD.Before(morningEnd) {
		// Crossing the lunch break: snap to 13:00 same day.
		sc.current = atTimeOfDay(sc.current, afternoonStart)
		return
	}

	sc.current = tentative
}

// HasNext reports whether Advance(1) would move the clock forward at all.
func (sc *SimulationClock) HasNext() bool {
	if len(sc.calendar) == 0 {
		return false
	}
	if sc.granularity.IsDaily() {
		return sc.index < len(sc.calendar)-1
	}
	if sc.index < len(sc.calendar)-1 {
		return true
	}
	// Last trading day: Advance(1) only moves forward while the next step
	// stays inside today's session, since the roll to a new day has
	// nowhere to go.
	tentative := sc.current.Add(time.Duration(sc.granularity.deltaMinutes()) * time.Minute)
	return tentative.YearDay() == sc.current.YearDay() && timeOfDay(tentative).Before(afternoonEnd)
}

// IsTradingTime reports whether Current() falls inside a trading session.
// Daily granularity is coarse and always reports true.
func (sc *SimulationClock) IsTradingTime() bool {
	if sc.granularity.IsDaily() {
		return true
	}
	tod := timeOfDay(sc.current)
	inMorning := !tod.Before(morningStart) && !tod.After(morningEnd)
	inAfternoon := !tod.Before(afternoonStart) && tod.Before(afternoonEnd)
	return inMorning || inAfternoon
}

// TimeToClose returns the whole seconds remaining in the current
// half-session (11:30 before noon, 15:00 after), or -1 outside both.
func (sc *SimulationClock) TimeToClose() int {
	if !sc.IsTradingTime() {
		return -1
	}
	tod := timeOfDay(sc.current)
	var close time.Time
	if !tod.After(morningEnd) {
		close = atTimeOfDay(sc.current, morningEnd)
	} else {
		close = atTimeOfDay(sc.current, afternoonEnd)
	}
	return int(close.Sub(sc.current).Seconds())
}

// Progress is a best-effort, UI-only fraction of replay completion. The
// exact formula is unspecified; this uses the same per-granularity
// constants as the reference implementation.
func (sc *SimulationClock) Progress() float64 {
	total := len(sc.calendar)
	if total == 0 {
		return 0
	}
	if sc.granularity.IsDaily() {
		return float64(sc.index) / float64(total)
	}

	completedDays := float64(sc.index)
	var dayProgress float64
	switch sc.granularity {
	case Min5:
		const totalMinutesPerDay = 240
		elapsed := (sc.current.Hour()-9)*60 + sc.current.Minute() - 30
		dayProgress = clamp01(float64(elapsed) / totalMinutesPerDay)
	case Min15:
		const totalSlots = 16
		slot := (sc.current.Hour()-9)*4 + sc.current.Minute()/15 - 2
		dayProgress = clamp01(float64(slot) / totalSlots)
	case Min30:
		const totalSlots = 8
		slot := (sc.current.Hour()-9)*2 + sc.current.Minute()/30 - 1
		dayProgress = clamp01(float64(slot) / totalSlots)
	}
	return (completedDays + dayProgress) / float64(total)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
