package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCNProfileDerivesLimitUpThreshold(t *testing.T) {
	p := CNProfile{}

	pct, err := p.LimitUpThreshold("688001")
	require.NoError(t, err)
	assert.Equal(t, 0.20, pct)

	pct, err = p.LimitUpThreshold("600519")
	require.NoError(t, err)
	assert.Equal(t, 0.10, pct)
}

func TestCNProfileReportsTwoSessions(t *testing.T) {
	sessions, err := CNProfile{}.TradingSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Equal(t, "09:30", sessions[0].Start)
	assert.Equal(t, "15:00", sessions[1].End)
}

func TestPlaceholderProfilesReturnNotImplemented(t *testing.T) {
	for _, p := range []Profile{HKProfile(), USProfile()} {
		_, err := p.LimitUpThreshold("0700")
		assert.ErrorIs(t, err, ErrNotImplemented)

		_, err = p.TradingSessions()
		assert.ErrorIs(t, err, ErrNotImplemented)
	}
}

func TestNewRegistryRegistersAllThreeMarkets(t *testing.T) {
	reg := NewRegistry(nil)
	assert.Equal(t, 3, reg.Count())

	cn, err := reg.Create("cn", nil)
	require.NoError(t, err)
	assert.Equal(t, "cn", cn.Code())

	hk, err := reg.Create("hk", nil)
	require.NoError(t, err)
	_, err = hk.TradingSessions()
	assert.ErrorIs(t, err, ErrNotImplemented)
}
