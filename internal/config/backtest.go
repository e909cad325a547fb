package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/etfarb/arbscan/internal/calendar"
)

const (
	minBacktestDate = "20000101"
	maxBacktestDate = "20991231"
	minWeightFloor  = 0.001
	maxWeightCeil   = 1.0
)

// BacktestConfig drives a replay run. Validation is ported from
// original_source/backend/backtest/config.py's BacktestConfig.__post_init__.
type BacktestConfig struct {
	StartDate       string              `yaml:"start_date"`
	EndDate         string              `yaml:"end_date"`
	Granularity     calendar.Granularity `yaml:"granularity"`
	MinWeight       float64             `yaml:"min_weight"`
	MinTimeToClose  int                 `yaml:"min_time_to_close"`
	MinETFVolume    float64             `yaml:"min_etf_volume"`
	EvaluatorType   string              `yaml:"evaluator_type"`
	SnapshotDates   []string            `yaml:"snapshot_dates"`
	Interpolation   string              `yaml:"interpolation"`
	UseWatchlist    bool                `yaml:"use_watchlist"`
	StockCodes      []string            `yaml:"stock_codes"`
	ETFCodes        []string            `yaml:"etf_codes"`
}

// DefaultBacktestConfig mirrors the Python dataclass's field defaults.
func DefaultBacktestConfig(startDate, endDate string) BacktestConfig {
	return BacktestConfig{
		StartDate:      startDate,
		EndDate:        endDate,
		Granularity:    calendar.Daily,
		MinWeight:      0.05,
		MinTimeToClose: 1800,
		MinETFVolume:   50_000_000,
		EvaluatorType:  "default",
		Interpolation:  "linear",
		UseWatchlist:   true,
	}
}

// ToMap renders c as a plain map via a YAML round trip through its own
// tags, so BacktestConfigFromMap(c.ToMap()) reproduces c.
func (c BacktestConfig) ToMap() (map[string]any, error) {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("backtest config to map: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("backtest config to map: %w", err)
	}
	return m, nil
}

// BacktestConfigFromMap is the inverse of BacktestConfig.ToMap.
func BacktestConfigFromMap(m map[string]any) (BacktestConfig, error) {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return BacktestConfig{}, fmt.Errorf("backtest config from map: %w", err)
	}
	var cfg BacktestConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return BacktestConfig{}, fmt.Errorf("backtest config from map: %w", err)
	}
	return cfg, nil
}

// Validate enforces the date-range, weight, and interpolation invariants.
func (c BacktestConfig) Validate() error {
	start, err := time.Parse("20060102", c.StartDate)
	if err != nil {
		return fmt.Errorf("backtest config: start_date must be YYYYMMDD: %w", err)
	}
	end, err := time.Parse("20060102", c.EndDate)
	if err != nil {
		return fmt.Errorf("backtest config: end_date must be YYYYMMDD: %w", err)
	}
	minDate, _ := time.Parse("20060102", minBacktestDate)
	maxDate, _ := time.Parse("20060102", maxBacktestDate)
	if start.Before(minDate) {
		return fmt.Errorf("backtest config: start_date must not be before %s", minBacktestDate)
	}
	if end.After(maxDate) {
		return fmt.Errorf("backtest config: end_date must not be after %s", maxBacktestDate)
	}
	if start.After(end) {
		return fmt.Errorf("backtest config: start_date %s must not be after end_date %s", c.StartDate, c.EndDate)
	}
	if c.MinWeight < minWeightFloor || c.MinWeight > maxWeightCeil {
		return fmt.Errorf("backtest config: min_weight must be in [%.3f,%.1f]", minWeightFloor, maxWeightCeil)
	}
	switch c.Interpolation {
	case "linear", "step":
	default:
		return fmt.Errorf("backtest config: interpolation must be linear or step, got %q", c.Interpolation)
	}
	return nil
}

// StrategyTemplate is one named preset from spec §6's table, surfaced to
// callers choosing between conservative/balanced/aggressive chain
// wiring.
type StrategyTemplate struct {
	ID              string
	MinWeight       float64
	MinETFVolume    float64 // 10k currency units, per spec's table unit
	MinOrderAmount  float64 // ×10^8 currency units, per spec's table unit
	EvaluatorType   string
}

// StrategyTemplates is the fixed preset table from spec §6.
var StrategyTemplates = map[string]StrategyTemplate{
	"conservative": {ID: "conservative", MinWeight: 0.08, MinETFVolume: 8000, MinOrderAmount: 15, EvaluatorType: "conservative"},
	"balanced":     {ID: "balanced", MinWeight: 0.05, MinETFVolume: 5000, MinOrderAmount: 10, EvaluatorType: "default"},
	"aggressive":   {ID: "aggressive", MinWeight: 0.03, MinETFVolume: 3000, MinOrderAmount: 5, EvaluatorType: "aggressive"},
}

// StrategyTemplateNames lists the preset ids in the table's declared order.
func StrategyTemplateNames() []string {
	return []string{"conservative", "balanced", "aggressive"}
}
