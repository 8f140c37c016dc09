package s2index

import (
	"github.com/golang/geo/s2"

	"github.com/samirrijal/footprint/internal/core/domain"
)

// Index implements ports.CellIndex on top of the S2 Hilbert curve.
type Index struct{}

// New returns an S2-backed cell index.
func New() Index {
	return Index{}
}

// LeafCell returns the level 30 cell containing p.
func (Index) LeafCell(p domain.GeoPoint) domain.CellID {
	return domain.CellID(s2.CellIDFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)))
}

// Parent returns the ancestor of id at level.
func (Index) Parent(id domain.CellID, level int) domain.CellID {
	return domain.CellID(s2.CellID(id).Parent(level))
}

// Next returns the next cell at the same level along the Hilbert curve,
// continuing onto the following face past the end of a face. Stepping past
// the end of face 5 yields an invalid face 6 identifier and ok is false.
func (Index) Next(id domain.CellID) (domain.CellID, bool) {
	next := s2.CellID(id).Next()
	return domain.CellID(next), next.IsValid()
}

// Prev returns the previous cell at the same level along the Hilbert curve.
// Stepping back from the start of face 0 wraps below zero into face 7, so ok
// is false there.
func (Index) Prev(id domain.CellID) (domain.CellID, bool) {
	prev := s2.CellID(id).Prev()
	return domain.CellID(prev), prev.IsValid()
}

// Pos returns the curve position of id with the face bits stripped.
func (Index) Pos(id domain.CellID) uint64 {
	return s2.CellID(id).Pos()
}

func (Index) Level(id domain.CellID) int {
	return s2.CellID(id).Level()
}

func (Index) Center(id domain.CellID) domain.GeoPoint {
	return toGeoPoint(s2.CellID(id).LatLng())
}

func (Index) Token(id domain.CellID) string {
	return s2.CellID(id).ToToken()
}

func (Index) Vertices(id domain.CellID) [4]domain.GeoPoint {
	cell := s2.CellFromCellID(s2.CellID(id))
	var out [4]domain.GeoPoint
	for k := range out {
		out[k] = toGeoPoint(s2.LatLngFromPoint(cell.Vertex(k)))
	}
	return out
}

func toGeoPoint(ll s2.LatLng) domain.GeoPoint {
	return domain.GeoPoint{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}
