package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParams is returned by FootprintParams.Validate.
var ErrInvalidParams = errors.New("invalid footprint params")

// MaxCellLevel is the leaf level of the cell hierarchy.
const MaxCellLevel = 30

// CellID identifies a cell of the hierarchical index. Ordering by value
// follows the space-filling curve traversal.
type CellID uint64

// Cell describes one cell of a footprint.
type Cell struct {
	ID     CellID   `json:"id"`
	Level  int      `json:"level"`
	Token  string   `json:"token"`
	Center GeoPoint `json:"center"`
}

// CellPath is a walk along the curve: the centre cell first, then next and
// previous neighbours alternating outward.
type CellPath []Cell

// IDs returns the identifiers of the path in walk order.
func (p CellPath) IDs() []CellID {
	ids := make([]CellID, len(p))
	for i, c := range p {
		ids[i] = c.ID
	}
	return ids
}

// CellRange holds the lowest and highest identifiers of a CellPath.
type CellRange struct {
	Low  CellID `json:"low"`
	High CellID `json:"high"`
}

// StepFootprint is the footprint scanned from one step location.
type StepFootprint struct {
	Step  GeoPoint  `json:"step"`
	Cell  Cell      `json:"cell"`
	Range CellRange `json:"range"`
}

// FootprintParams tune the scan model. The defaults reproduce the legacy
// client: level 15 cells, 10 steps each way, 70 m interaction radius.
type FootprintParams struct {
	WalkLevel              int     `json:"walk_level"`
	PathSteps              int     `json:"path_steps"`
	VisibilityRadiusMeters float64 `json:"visibility_radius_meters"`
	EarthRadiusKm          float64 `json:"earth_radius_km"`
}

// DefaultFootprintParams returns the legacy scan model.
func DefaultFootprintParams() FootprintParams {
	return FootprintParams{
		WalkLevel:              15,
		PathSteps:              10,
		VisibilityRadiusMeters: 70,
		EarthRadiusKm:          6378.137,
	}
}

// PathLength is the number of cells in a walk path.
func (p FootprintParams) PathLength() int {
	return 1 + 2*p.PathSteps
}

// Validate checks that the params describe a usable scan model.
func (p FootprintParams) Validate() error {
	var errs []string

	if p.WalkLevel < 0 || p.WalkLevel > MaxCellLevel {
		errs = append(errs, fmt.Sprintf("walk_level must be 0-%d, got %d", MaxCellLevel, p.WalkLevel))
	}
	if p.PathSteps < 0 {
		errs = append(errs, fmt.Sprintf("path_steps must not be negative, got %d", p.PathSteps))
	}
	if p.VisibilityRadiusMeters <= 0 {
		errs = append(errs, "visibility_radius_meters must be positive")
	}
	if p.EarthRadiusKm <= 0 {
		errs = append(errs, "earth_radius_km must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidParams, strings.Join(errs, "; "))
	}
	return nil
}
