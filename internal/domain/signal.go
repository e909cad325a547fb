package domain

import (
	"fmt"
	"time"
)

// TradingSignal is the engine's output: a chosen ETF paired with the event
// that triggered it, explanatory text, and categorical confidence/risk.
// Immutable once built by ChainExecutor.
type TradingSignal struct {
	SignalID  string
	Timestamp time.Time

	// Event-derived fields.
	StockCode string
	StockName string
	StockPrice float64
	ChangePct float64

	// A-share extras, optional (zero value when the originating detector
	// does not populate them).
	LimitTime  string
	SealAmount float64

	// Chosen-ETF fields.
	ETFCode        string
	ETFName        string
	ETFWeight      float64
	ETFPrice       float64
	ETFPremium     float64
	ETFDailyAmount float64 // ETF turnover, currency units; LiquidityFilter's lookup

	// Ranking fields, carried straight from the selected HoldingEntry.
	ActualWeight float64
	WeightRank   int
	Top10Ratio   float64

	Reason     string
	Confidence Level
	RiskLevel  Level
}

// Validate enforces the construction invariants from the data model.
func (s TradingSignal) Validate() error {
	if s.SignalID == "" {
		return fmt.Errorf("trading signal: signal_id must not be empty")
	}
	if s.StockCode == "" {
		return fmt.Errorf("trading signal %s: stock_code must not be empty", s.SignalID)
	}
	if s.ETFCode == "" {
		return fmt.Errorf("trading signal %s: etf_code must not be empty", s.SignalID)
	}
	if s.ETFWeight < 0 || s.ETFWeight > 1 {
		return fmt.Errorf("trading signal %s: etf_weight %.4f out of [0,1]", s.SignalID, s.ETFWeight)
	}
	if s.Top10Ratio < 0 || s.Top10Ratio > 1 {
		return fmt.Errorf("trading signal %s: top10_ratio %.4f out of [0,1]", s.SignalID, s.Top10Ratio)
	}
	return nil
}

// ToMap renders the signal as a plain map, the way to_dict does for
// original_source/backend/arbitrage/domain/models.py's TradingSignal
// (dataclasses.asdict). Timestamp is carried as RFC3339Nano so
// SignalFromMap(s.ToMap()) round-trips exactly.
func (s TradingSignal) ToMap() map[string]any {
	return map[string]any{
		"signal_id":        s.SignalID,
		"timestamp":        s.Timestamp.Format(time.RFC3339Nano),
		"stock_code":       s.StockCode,
		"stock_name":       s.StockName,
		"stock_price":      s.StockPrice,
		"change_pct":       s.ChangePct,
		"limit_time":       s.LimitTime,
		"seal_amount":      s.SealAmount,
		"etf_code":         s.ETFCode,
		"etf_name":         s.ETFName,
		"etf_weight":       s.ETFWeight,
		"etf_price":        s.ETFPrice,
		"etf_premium":      s.ETFPremium,
		"etf_daily_amount": s.ETFDailyAmount,
		"actual_weight":    s.ActualWeight,
		"weight_rank":      s.WeightRank,
		"top10_ratio":      s.Top10Ratio,
		"reason":           s.Reason,
		"confidence":       string(s.Confidence),
		"risk_level":       string(s.RiskLevel),
	}
}

// SignalFromMap is the inverse of TradingSignal.ToMap, the way from_dict is
// TradingSignal.to_dict's inverse in original_source/backend/arbitrage/domain/models.py.
func SignalFromMap(m map[string]any) (TradingSignal, error) {
	str := func(key string) string {
		v, _ := m[key].(string)
		return v
	}
	f64 := func(key string) float64 {
		switch v := m[key].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
		return 0
	}
	intV := func(key string) int {
		switch v := m[key].(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
		return 0
	}

	ts, err := time.Parse(time.RFC3339Nano, str("timestamp"))
	if err != nil {
		return TradingSignal{}, fmt.Errorf("trading signal from map: timestamp: %w", err)
	}

	return TradingSignal{
		SignalID:       str("signal_id"),
		Timestamp:      ts,
		StockCode:      str("stock_code"),
		StockName:      str("stock_name"),
		StockPrice:     f64("stock_price"),
		ChangePct:      f64("change_pct"),
		LimitTime:      str("limit_time"),
		SealAmount:     f64("seal_amount"),
		ETFCode:        str("etf_code"),
		ETFName:        str("etf_name"),
		ETFWeight:      f64("etf_weight"),
		ETFPrice:       f64("etf_price"),
		ETFPremium:     f64("etf_premium"),
		ETFDailyAmount: f64("etf_daily_amount"),
		ActualWeight:   f64("actual_weight"),
		WeightRank:     intV("weight_rank"),
		Top10Ratio:     f64("top10_ratio"),
		Reason:         str("reason"),
		Confidence:     Level(str("confidence")),
		RiskLevel:      Level(str("risk_level")),
	}, nil
}

// CompactTimestamp formats t the way the mandated signal_id format expects:
// YYYYMMDDHHMMSS.
func CompactTimestamp(t time.Time) string {
	return t.Format("20060102150405")
}

// NewSignalID builds the mandated "SIG_" + compact timestamp + "_" + code
// identifier.
func NewSignalID(t time.Time, securityCode string) string {
	return fmt.Sprintf("SIG_%s_%s", CompactTimestamp(t), securityCode)
}

// ConfidenceBreakdown is the derived, explainable decomposition behind a
// signal's categorical Confidence.
type ConfidenceBreakdown struct {
	TotalScore float64 // 0-100
	Level      Level
	SubScores  [4]SubScore
}

// SubScoreKind names one of the four scored dimensions.
type SubScoreKind string

const (
	SubScoreOrderAmount   SubScoreKind = "order_amount"
	SubScoreWeight        SubScoreKind = "weight"
	SubScoreLiquidity     SubScoreKind = "liquidity"
	SubScoreTimeToClose   SubScoreKind = "time_to_close"
)

// SubScore is one weighted, pass/fail-annotated dimension of a
// ConfidenceBreakdown.
type SubScore struct {
	Kind          SubScoreKind
	Raw           float64
	Threshold     float64
	WeightShare   float64 // this dimension's share of the total, in [0,1]
	Pass          bool
	WeightedScore float64
}
