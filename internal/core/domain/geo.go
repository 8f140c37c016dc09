package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned by GeoPoint.Validate for out-of-range input.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// GeoPoint represents a geographic coordinate (WGS 84) in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate reports whether the point lies within latitude [-90, 90] and
// longitude [-180, 180]. The footprint calculations never call it; NaN and
// out-of-range values propagate through the trigonometry unchanged.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be in [-90, 90]", ErrInvalidCoordinate, p.Lat)
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v must be in [-180, 180]", ErrInvalidCoordinate, p.Lon)
	}
	return nil
}

// Visibility is the outcome of a step-to-feature range check.
type Visibility struct {
	Step           GeoPoint `json:"step"`
	Feature        GeoPoint `json:"feature"`
	DistanceMeters float64  `json:"distance_m"`
	InRange        bool     `json:"in_range"`
}
