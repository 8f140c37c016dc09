package geospatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	equatorialKm = 6378.137
	meanKm       = 6371.0
)

func TestHaversine_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(equatorialKm, 43.263, -2.935, 43.263, -2.935))
}

func TestHaversine_OneDegreeOfLongitudeAtEquator(t *testing.T) {
	// radius * pi / 180
	assert.InDelta(t, 111319.49, Haversine(equatorialKm, 0, 0, 0, 1), 1)
	assert.InDelta(t, 111195, Haversine(meanKm, 0, 0, 0, 1), 50)
}

func TestHaversine_Symmetric(t *testing.T) {
	d1 := Haversine(equatorialKm, 43.263, -2.935, 40.4168, -3.7038)
	d2 := Haversine(equatorialKm, 40.4168, -3.7038, 43.263, -2.935)
	assert.InDelta(t, d1, d2, 1e-6)
	// Bilbao to Madrid is roughly 320 km
	assert.InDelta(t, 320000, d1, 10000)
}

func TestHaversine_NaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(Haversine(equatorialKm, math.NaN(), 0, 0, 0)))
}

func TestDestination_ZeroDistance(t *testing.T) {
	for _, bearing := range []float64{0, 45, 90, 180, 270, 359.9} {
		lat, lon := Destination(equatorialKm, 43.263, -2.935, 0, bearing)
		assert.InDelta(t, 43.263, lat, 1e-9)
		assert.InDelta(t, -2.935, lon, 1e-9)
	}
}

func TestDestination_CardinalBearings(t *testing.T) {
	km := 111.31949 // about one degree of arc

	lat, lon := Destination(equatorialKm, 0, 0, km, 0)
	assert.InDelta(t, 1, lat, 1e-3)
	assert.InDelta(t, 0, lon, 1e-9)

	lat, lon = Destination(equatorialKm, 0, 0, km, 90)
	assert.InDelta(t, 0, lat, 1e-9)
	assert.InDelta(t, 1, lon, 1e-3)

	lat, lon = Destination(equatorialKm, 0, 0, km, 180)
	assert.InDelta(t, -1, lat, 1e-3)
	assert.InDelta(t, 0, lon, 1e-9)
}

func TestDestination_RoundTripsDistance(t *testing.T) {
	for _, r := range []float64{equatorialKm, meanKm} {
		lat, lon := Destination(r, 43.263, -2.935, 0.07, 123)
		assert.InDelta(t, 70, Haversine(r, 43.263, -2.935, lat, lon), 0.01)
	}
}

func TestDestination_LongitudeNotWrapped(t *testing.T) {
	_, lon := Destination(equatorialKm, 0, 179.9, 111.31949, 90)
	assert.Greater(t, lon, 180.0)
}
