package evaluator

import (
	"gonum.org/v1/gonum/stat"

	"github.com/etfarb/arbscan/internal/domain"
)

// BreakdownThresholds parameterizes ConfidenceBreakdown's four sub-score
// dimensions. Fields are named and defaulted the same way
// original_source/backend/domain/signal_explanation.py's
// ConfidenceBreakdown.from_signal reads its `thresholds` dict.
type BreakdownThresholds struct {
	MinOrderAmount  float64 // seal amount, currency units
	MinWeight       float64
	MinETFVolume    float64 // ETF turnover, currency units
	MinTimeToCloseS int
}

// DefaultBreakdownThresholds mirrors the Python reference's dict defaults.
func DefaultBreakdownThresholds() BreakdownThresholds {
	return BreakdownThresholds{
		MinOrderAmount:  1_000_000_000, // 10 亿
		MinWeight:       0.05,
		MinETFVolume:    50_000_000, // 5000 万
		MinTimeToCloseS: 1800,
	}
}

// ComputeBreakdown builds a ConfidenceBreakdown from the raw signal
// inputs, scoring each dimension 0-100 against its threshold (capped at
// 100), then combining them with gonum's weighted mean using each
// dimension's WeightShare. Ported from signal_explanation.py's
// ConfidenceBreakdown.from_signal: order-amount and weight each carry 30%
// of the total, liquidity 25%, time-to-close 15%.
func ComputeBreakdown(sealAmount, weight, etfVolume float64, timeToCloseS int, t BreakdownThresholds) domain.ConfidenceBreakdown {
	order := subScore(domain.SubScoreOrderAmount, sealAmount, t.MinOrderAmount, 0.30)
	weightScore := subScore(domain.SubScoreWeight, weight, t.MinWeight, 0.30)
	liquidity := subScore(domain.SubScoreLiquidity, etfVolume, t.MinETFVolume, 0.25)
	timeToClose := subScore(domain.SubScoreTimeToClose, float64(timeToCloseS), float64(t.MinTimeToCloseS), 0.15)

	subScores := [4]domain.SubScore{order, weightScore, liquidity, timeToClose}

	raws := make([]float64, len(subScores))
	weights := make([]float64, len(subScores))
	for i, s := range subScores {
		raws[i] = s.WeightedScore / s.WeightShare // recover the 0-100 score before weighting
		weights[i] = s.WeightShare
	}
	total := stat.Mean(raws, weights)

	level := domain.LevelLow
	switch {
	case total >= 80:
		level = domain.LevelHigh
	case total >= 60:
		level = domain.LevelMedium
	}

	return domain.ConfidenceBreakdown{
		TotalScore: total,
		Level:      level,
		SubScores:  subScores,
	}
}

func subScore(kind domain.SubScoreKind, raw, threshold, weightShare float64) domain.SubScore {
	score := 100.0
	if threshold > 0 {
		score = (raw / threshold) * 80
		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}
	}
	return domain.SubScore{
		Kind:          kind,
		Raw:           raw,
		Threshold:     threshold,
		WeightShare:   weightShare,
		Pass:          raw >= threshold,
		WeightedScore: score * weightShare,
	}
}
