package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWGS84_Amersfoort(t *testing.T) {
	// The datum's reference point maps onto itself.
	pt := ToWGS84(155000, 463000)
	require.NotNil(t, pt)
	assert.InDelta(t, 52.15517440, pt.Y(), 1e-6)
	assert.InDelta(t, 5.38720621, pt.X(), 1e-6)
	assert.Equal(t, 4326, pt.SRID())
}

func TestFromWGS84_Amersfoort(t *testing.T) {
	pt := FromWGS84(52.15517440, 5.38720621)
	require.NotNil(t, pt)
	assert.InDelta(t, 155000.0, pt.X(), 0.01)
	assert.InDelta(t, 463000.0, pt.Y(), 0.01)
	assert.Equal(t, 28992, pt.SRID())
}

func TestRoundTrip(t *testing.T) {
	// Representative points spread across the country.
	points := []struct {
		name string
		x, y float64
	}{
		{"Amsterdam", 121687, 487484},
		{"Groningen", 233627, 582073},
		{"Maastricht", 176330, 317963},
		{"Den Helder", 114355, 547660},
	}
	for _, p := range points {
		t.Run(p.name, func(t *testing.T) {
			wgs := ToWGS84(p.x, p.y)
			rd := FromWGS84(wgs.Y(), wgs.X())
			// The polynomial pair is not an exact inverse; metre-level
			// agreement is what the approximation promises.
			assert.InDelta(t, p.x, rd.X(), 1.0)
			assert.InDelta(t, p.y, rd.Y(), 1.0)
		})
	}
}

func TestInNetherlands(t *testing.T) {
	assert.True(t, InNetherlands(155000, 463000))
	assert.True(t, InNetherlands(121687, 487484))
	assert.False(t, InNetherlands(-1000, 463000))
	assert.False(t, InNetherlands(155000, 100000))
	assert.False(t, InNetherlands(400000, 463000))
}
