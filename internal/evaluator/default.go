package evaluator

import (
	"github.com/etfarb/arbscan/internal/clock"
	"github.com/etfarb/arbscan/internal/domain"
)

// thresholds holds every tunable the evaluator algorithm reads. Default,
// Conservative, and Aggressive are the same algorithm parameterized by a
// different thresholds value — spec §9's "tagged variants, no hidden
// state" redesign replacing the original's ConservativeEvaluator /
// AggressiveEvaluator subclass pair.
type thresholds struct {
	HighWeight        float64
	LowWeight         float64
	HighRank          int
	LowRank           int
	RiskHighTimeS     int
	RiskLowTimeS      int
	Top10RatioHigh    float64
	MorningHour       int
}

// Evaluator is the single SignalEvaluator implementation, parameterized
// by thresholds. Use NewDefault/NewConservative/NewAggressive for the
// three reference variants.
type Evaluator struct {
	t thresholds
}

func defaultThresholds() thresholds {
	return thresholds{
		HighWeight:     0.10,
		LowWeight:      0.03,
		HighRank:       3,
		LowRank:        8,
		RiskHighTimeS:  600,
		RiskLowTimeS:   3600,
		Top10RatioHigh: 0.60,
		MorningHour:    10,
	}
}

// NewDefault builds the default, balanced evaluator.
func NewDefault() *Evaluator {
	return &Evaluator{t: defaultThresholds()}
}

// NewConservative builds a stricter variant: higher weight/rank bars for
// High confidence, a narrower Low-risk window.
func NewConservative() *Evaluator {
	t := defaultThresholds()
	t.HighWeight = 0.15
	t.LowWeight = 0.05
	t.HighRank = 2
	t.LowRank = 5
	t.RiskLowTimeS = 5400
	t.Top10RatioHigh = 0.50
	return &Evaluator{t: t}
}

// NewAggressive builds a looser variant: lower weight/rank bars for High
// confidence, a wider Low-risk window.
func NewAggressive() *Evaluator {
	t := defaultThresholds()
	t.HighWeight = 0.07
	t.LowWeight = 0.02
	t.HighRank = 5
	t.LowRank = 12
	t.RiskLowTimeS = 1800
	t.Top10RatioHigh = 0.75
	return &Evaluator{t: t}
}

// Evaluate implements SignalEvaluator, applying the five-step algorithm
// from spec §4.5 / original_source's DefaultSignalEvaluator.evaluate.
func (ev *Evaluator) Evaluate(_ domain.Event, h domain.HoldingEntry) (confidence, risk domain.Level) {
	confidence = domain.LevelMedium
	risk = domain.LevelMedium

	// 1. Weight.
	switch {
	case h.Weight >= ev.t.HighWeight:
		confidence = domain.LevelHigh
	case h.Weight < ev.t.LowWeight:
		confidence = domain.LevelLow
	}

	// 2. Rank.
	if h.Rank <= ev.t.HighRank && confidence != domain.LevelHigh {
		confidence = domain.LevelHigh
	} else if h.Rank > ev.t.LowRank {
		confidence = domain.LevelLow
	}

	// 3. Time-to-close.
	timeToClose := timeToCloseSeconds()
	switch {
	case timeToClose < ev.t.RiskHighTimeS:
		risk = domain.LevelHigh
	case timeToClose > ev.t.RiskLowTimeS:
		risk = domain.LevelLow
	}

	// 4. Concentration: raise risk by one step.
	if h.Top10Ratio > ev.t.Top10RatioHigh {
		risk = risk.UpgradeOneStep()
	}

	// 5. Intraday early-hour mitigation.
	if clock.Active().Now(clock.CHINA).Hour() < ev.t.MorningHour && risk == domain.LevelHigh {
		risk = domain.LevelMedium
	}

	return confidence, risk
}

func timeToCloseSeconds() int {
	now := clock.Active().Now(clock.CHINA)
	if now.Hour() < 9 || now.Hour() >= 15 {
		return -1
	}
	closeHour, closeMinute := 15, 0
	secondsNow := now.Hour()*3600 + now.Minute()*60 + now.Second()
	secondsClose := closeHour*3600 + closeMinute*60
	return secondsClose - secondsNow
}
