package quality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/etfarb/arbscan/internal/domain"
	"github.com/etfarb/arbscan/internal/provider"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateFullCoverageGradesAPlus(t *testing.T) {
	quotes := map[string]map[string]domain.Quote{}
	for _, d := range []string{"20240101", "20240102", "20240103", "20240104", "20240105"} {
		quotes[d] = map[string]domain.Quote{
			"600519": {Code: "600519"},
			"512690": {Code: "512690"},
		}
	}
	hist := provider.NewHistoricalProvider(quotes, nil)

	preview := Generate(hist, []string{"600519"}, []string{"512690"}, date(2024, 1, 1), date(2024, 1, 5), nil)

	assert.Equal(t, preview.Coverage.TotalTradingDays, preview.Coverage.CoveredDays)
	assert.Equal(t, Complete, preview.Stocks[0].Classification)
	assert.Equal(t, Complete, preview.ETFs[0].Classification)
	assert.Equal(t, "A+", preview.Grade)
	assert.InDelta(t, 100, preview.CompositeScore, 0.01)
}

func TestGeneratePartialCoverageClassifiesAndGradesLower(t *testing.T) {
	quotes := map[string]map[string]domain.Quote{
		"20240101": {"600519": {Code: "600519"}},
		"20240102": {"600519": {Code: "600519"}},
	}
	hist := provider.NewHistoricalProvider(quotes, nil)

	// five trading days requested (Mon-Fri), only two covered
	preview := Generate(hist, []string{"600519"}, nil, date(2024, 1, 1), date(2024, 1, 5), nil)

	assert.Equal(t, 5, preview.Coverage.TotalTradingDays)
	assert.Equal(t, 2, preview.Coverage.CoveredDays)
	assert.Len(t, preview.Coverage.MissingDates, 3)
	assert.NotEqual(t, "A+", preview.Grade)
}

func TestGenerateMissingSecurityClassifiesMissing(t *testing.T) {
	hist := provider.NewHistoricalProvider(map[string]map[string]domain.Quote{}, nil)

	preview := Generate(hist, []string{"600519"}, nil, date(2024, 1, 1), date(2024, 1, 5), nil)

	assert.Equal(t, Missing, preview.Stocks[0].Classification)
	assert.Equal(t, "D", preview.Grade)
}

func TestSummaryFormatsHumanReadableDigest(t *testing.T) {
	hist := provider.NewHistoricalProvider(map[string]map[string]domain.Quote{}, nil)
	preview := Generate(hist, nil, nil, date(2024, 1, 1), date(2024, 1, 1), nil)
	assert.Contains(t, preview.Summary(), "quality=")
}
