package polyline

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-polyline"

	"github.com/samirrijal/footprint/internal/core/domain"
)

// ErrEmpty is returned when decoding an empty polyline.
var ErrEmpty = errors.New("encoded polyline is empty")

// Decode converts a Google encoded polyline into step points.
func Decode(encoded string) ([]domain.GeoPoint, error) {
	if encoded == "" {
		return nil, ErrEmpty
	}

	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("decode polyline: %d trailing bytes", len(rest))
	}

	points := make([]domain.GeoPoint, len(coords))
	for i, c := range coords {
		points[i] = domain.GeoPoint{Lat: c[0], Lon: c[1]}
	}
	return points, nil
}

// Encode converts points into a Google encoded polyline.
func Encode(points []domain.GeoPoint) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lon}
	}
	return string(polyline.EncodeCoords(coords))
}
