package ports

import (
	"github.com/samirrijal/footprint/internal/core/domain"
)

// CellIndex is the hierarchical spherical cell index the footprint logic
// walks. Identifier comparison is plain CellID ordering.
type CellIndex interface {
	// LeafCell returns the finest cell containing the point.
	LeafCell(p domain.GeoPoint) domain.CellID
	// Parent returns the ancestor of id at the given level.
	Parent(id domain.CellID, level int) domain.CellID
	// Next returns the following cell at the same level along the curve.
	// ok is false past the last cell of the curve.
	Next(id domain.CellID) (next domain.CellID, ok bool)
	// Prev returns the preceding cell at the same level along the curve.
	// ok is false before the first cell of the curve.
	Prev(id domain.CellID) (prev domain.CellID, ok bool)
	// Pos returns the position of id along the curve within its face.
	Pos(id domain.CellID) uint64
	Level(id domain.CellID) int
	Center(id domain.CellID) domain.GeoPoint
	Token(id domain.CellID) string
	// Vertices returns the cell corners in counter-clockwise order.
	Vertices(id domain.CellID) [4]domain.GeoPoint
}
