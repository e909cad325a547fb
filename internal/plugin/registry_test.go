package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arberrors "github.com/etfarb/arbscan/internal/errors"
)

type widget struct{ name string }

func widgetFactory(name string) Factory[widget] {
	return func(cfg map[string]any) (widget, error) {
		return widget{name: name}, nil
	}
}

func TestRegisterRejectsMalformedVersion(t *testing.T) {
	r := New[widget]("test", nil)

	err := r.Register("a", widgetFactory("a"), 0, "", "not-a-version")

	require.Error(t, err)
	assert.Equal(t, arberrors.Config, arberrors.CodeOf(err))
	assert.False(t, r.IsRegistered("a"))
}

func TestRegisterReplacesOnCollision(t *testing.T) {
	r := New[widget]("test", nil)
	require.NoError(t, r.Register("a", widgetFactory("first"), 0, "", "1.0.0"))
	require.NoError(t, r.Register("a", widgetFactory("second"), 0, "", "1.0.1"))

	w, err := r.Create("a", nil)
	require.NoError(t, err)
	assert.Equal(t, "second", w.name)

	meta, ok := r.GetMetadata("a")
	require.True(t, ok)
	assert.Equal(t, "1.0.1", meta.Version)
}

func TestListNamesSortedByPriorityDescendingThenName(t *testing.T) {
	r := New[widget]("test", nil)
	require.NoError(t, r.Register("low", widgetFactory("low"), 1, "", "1.0.0"))
	require.NoError(t, r.Register("high", widgetFactory("high"), 10, "", "1.0.0"))
	require.NoError(t, r.Register("also-high", widgetFactory("also-high"), 10, "", "1.0.0"))

	assert.Equal(t, []string{"also-high", "high", "low"}, r.ListNames())
}

func TestCreateUnregisteredReturnsNoCandidate(t *testing.T) {
	r := New[widget]("test", nil)

	_, err := r.Create("missing", nil)

	require.Error(t, err)
	assert.Equal(t, arberrors.NoCandidate, arberrors.CodeOf(err))
}

func TestUnregisterAndClear(t *testing.T) {
	r := New[widget]("test", nil)
	require.NoError(t, r.Register("a", widgetFactory("a"), 0, "", "1.0.0"))

	assert.True(t, r.Unregister("a"))
	assert.False(t, r.Unregister("a"))
	assert.Equal(t, 0, r.Count())

	require.NoError(t, r.Register("b", widgetFactory("b"), 0, "", "1.0.0"))
	r.Clear()
	assert.Equal(t, 0, r.Count())
}

func TestSummaryListsRegisteredPlugins(t *testing.T) {
	r := New[widget]("roles", nil)
	require.NoError(t, r.Register("a", widgetFactory("a"), 5, "desc", "2.1.0"))

	summary := r.Summary()

	assert.Contains(t, summary, "roles")
	assert.Contains(t, summary, "a")
	assert.Contains(t, summary, "2.1.0")
}
