package domain

import "fmt"

// Category classifies the investment style of a holding ETF.
type Category string

const (
	CategoryBroadIndex Category = "broad_index"
	CategorySector     Category = "sector"
	CategoryTheme      Category = "theme"
	CategoryStrategy   Category = "strategy"
	CategoryOther      Category = "other"
)

// HoldingEntry describes one ETF's position in a security, as reported by
// a HoldingProvider.
type HoldingEntry struct {
	ETFCode    string
	ETFName    string
	Weight     float64 // fraction in [0,1]
	Category   Category
	Rank       int // >= -1; -1 means unranked
	InTop10    bool
	Top10Ratio float64 // fraction in [0,1]
}

// WeightPct returns Weight expressed as a percentage.
func (h HoldingEntry) WeightPct() float64 {
	return h.Weight * 100
}

// Validate enforces the construction invariants from the data model.
func (h HoldingEntry) Validate() error {
	if h.ETFCode == "" {
		return fmt.Errorf("holding entry: etf_code must not be empty")
	}
	if h.Weight < 0 || h.Weight > 1 {
		return fmt.Errorf("holding entry %s: weight %.4f out of [0,1]", h.ETFCode, h.Weight)
	}
	if h.Top10Ratio < 0 || h.Top10Ratio > 1 {
		return fmt.Errorf("holding entry %s: top10_ratio %.4f out of [0,1]", h.ETFCode, h.Top10Ratio)
	}
	if h.Rank < -1 {
		return fmt.Errorf("holding entry %s: rank %d must be >= -1", h.ETFCode, h.Rank)
	}
	return nil
}

// NewHoldingEntry constructs and validates a HoldingEntry.
func NewHoldingEntry(etfCode, etfName string, weight float64, category Category, rank int, inTop10 bool, top10Ratio float64) (HoldingEntry, error) {
	h := HoldingEntry{
		ETFCode:    etfCode,
		ETFName:    etfName,
		Weight:     weight,
		Category:   category,
		Rank:       rank,
		InTop10:    inTop10,
		Top10Ratio: top10Ratio,
	}
	if err := h.Validate(); err != nil {
		return HoldingEntry{}, err
	}
	return h, nil
}
