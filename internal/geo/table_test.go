package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/eventscout/internal/geo"
)

func TestResolveKnownMetros(t *testing.T) {
	cases := []struct {
		in    string
		name  string
		dmaID int
	}{
		{"Los Angeles", "Los Angeles", 324},
		{"los angeles, ca", "Los Angeles", 324},
		{"Costa Mesa", "Los Angeles", 324},
		{"LA", "Los Angeles", 324},
		{"New York City", "New York", 345},
		{"nyc", "New York", 345},
		{"Chicago", "Chicago", 602},
		{"Las Vegas", "Las Vegas", 839},
		{"vegas baby", "Las Vegas", 839},
		{"San Francisco", "San Francisco", 0},
		{"SF", "San Francisco", 0},
		{"Miami", "Miami", 0},
		{"Austin", "Austin", 0},
	}
	for _, tc := range cases {
		m, ok := geo.Resolve(tc.in)
		require.True(t, ok, "expected %q to resolve", tc.in)
		assert.Equal(t, tc.name, m.Name, "input %q", tc.in)
		assert.Equal(t, tc.dmaID, m.DMAID, "input %q", tc.in)
	}
}

func TestResolveMiss(t *testing.T) {
	for _, in := range []string{"", "Boise", "Tulsa"} {
		_, ok := geo.Resolve(in)
		assert.False(t, ok, "expected %q not to resolve", in)
	}
}

// Short aliases match whole words only; "Atlanta" must not hit "la".
func TestResolveShortAliasWholeWord(t *testing.T) {
	_, ok := geo.Resolve("Atlanta")
	assert.False(t, ok)

	m, ok := geo.Resolve("downtown la")
	require.True(t, ok)
	assert.Equal(t, "Los Angeles", m.Name)
}

func TestDMA(t *testing.T) {
	id, ok := geo.DMA("New York")
	require.True(t, ok)
	assert.Equal(t, 345, id)

	// A metro without a verified DMA id is a miss for DMA purposes.
	_, ok = geo.DMA("San Francisco")
	assert.False(t, ok)
}

func TestLatLong(t *testing.T) {
	m, ok := geo.Resolve("Chicago")
	require.True(t, ok)
	assert.Equal(t, "41.8781,-87.6298", m.LatLong())
}
