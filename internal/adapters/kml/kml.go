package kml

import (
	"fmt"
	"io"

	"github.com/twpayne/go-kml"

	"github.com/samirrijal/footprint/internal/core/domain"
	"github.com/samirrijal/footprint/internal/core/ports"
)

// WriteFootprint writes the cells of path as KML polygons, plus a placemark
// for the step the path was derived from.
func WriteFootprint(w io.Writer, name string, step domain.GeoPoint, path domain.CellPath, index ports.CellIndex) error {
	children := make([]kml.Element, 0, len(path)+2)
	children = append(children,
		kml.Name(name),
		kml.Placemark(
			kml.Name("step"),
			kml.Point(kml.Coordinates(kml.Coordinate{Lon: step.Lon, Lat: step.Lat})),
		),
	)

	for i, c := range path {
		children = append(children, cellPlacemark(i, c, index.Vertices(c.ID)))
	}

	if err := kml.KML(kml.Document(children...)).WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	return nil
}

func cellPlacemark(walkIndex int, c domain.Cell, vertices [4]domain.GeoPoint) kml.Element {
	ring := make([]kml.Coordinate, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, kml.Coordinate{Lon: v.Lon, Lat: v.Lat})
	}
	ring = append(ring, ring[0])

	return kml.Placemark(
		kml.Name(c.Token),
		kml.Description(fmt.Sprintf("walk index %d, level %d, id %d", walkIndex, c.Level, uint64(c.ID))),
		kml.Polygon(
			kml.OuterBoundaryIs(
				kml.LinearRing(kml.Coordinates(ring...)),
			),
		),
	)
}
