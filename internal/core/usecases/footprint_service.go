package usecases

import (
	"slices"

	"github.com/samirrijal/footprint/internal/core/domain"
	"github.com/samirrijal/footprint/internal/core/ports"
	"github.com/samirrijal/footprint/internal/pkg/geospatial"
)

// FootprintService computes the cells a client scans from a step location
// and answers whether a feature has already been covered.
type FootprintService struct {
	index     ports.CellIndex
	params    domain.FootprintParams
	observers []ports.FootprintObserver
}

// NewFootprintService creates a new FootprintService. params are used as
// given; call params.Validate first when they come from user input.
func NewFootprintService(index ports.CellIndex, params domain.FootprintParams, observers ...ports.FootprintObserver) *FootprintService {
	return &FootprintService{index: index, params: params, observers: observers}
}

// Params returns the scan model in use.
func (s *FootprintService) Params() domain.FootprintParams {
	return s.params
}

// LocationCell returns the walk-level cell containing p.
func (s *FootprintService) LocationCell(p domain.GeoPoint) domain.Cell {
	return s.cell(s.locationCellID(p))
}

func (s *FootprintService) locationCellID(p domain.GeoPoint) domain.CellID {
	return s.index.Parent(s.index.LeafCell(p), s.params.WalkLevel)
}

// CellPath walks PathSteps cells forward and backward along the curve from
// the location cell of p. The result starts with the centre cell followed by
// next/prev pairs moving outward. A direction that runs off either end of
// the curve stops there, so the path is shorter than PathLength only within
// PathSteps cells of the first or last cell at the walk level.
func (s *FootprintService) CellPath(p domain.GeoPoint) domain.CellPath {
	start := s.locationCellID(p)

	path := make(domain.CellPath, 0, s.params.PathLength())
	path = append(path, s.cell(start))

	next, prev := start, start
	forward, backward := true, true
	for i := 0; i < s.params.PathSteps && (forward || backward); i++ {
		if forward {
			if next, forward = s.index.Next(next); forward {
				path = append(path, s.cell(next))
			}
		}
		if backward {
			if prev, backward = s.index.Prev(prev); backward {
				path = append(path, s.cell(prev))
			}
		}
	}
	return path
}

// CellPathIDs returns the identifiers of CellPath(p) in ascending order.
func (s *FootprintService) CellPathIDs(p domain.GeoPoint) []domain.CellID {
	ids := s.CellPath(p).IDs()
	slices.Sort(ids)
	return ids
}

// CellRange returns the lowest and highest identifiers of CellPath(p).
func (s *FootprintService) CellRange(p domain.GeoPoint) domain.CellRange {
	ids := s.CellPathIDs(p)
	return domain.CellRange{Low: ids[0], High: ids[len(ids)-1]}
}

// AlreadySeen reports whether the leaf cell of p falls inside any of ranges.
// Bounds are inclusive and compared by curve position.
func (s *FootprintService) AlreadySeen(p domain.GeoPoint, ranges []domain.CellRange) bool {
	seen := s.inAnyRange(s.index.Pos(s.index.LeafCell(p)), ranges)
	for _, o := range s.observers {
		o.ObserveSeenCheck(p, len(ranges), seen)
	}
	return seen
}

func (s *FootprintService) inAnyRange(pos uint64, ranges []domain.CellRange) bool {
	for _, r := range ranges {
		if s.index.Pos(r.Low) <= pos && pos <= s.index.Pos(r.High) {
			return true
		}
	}
	return false
}

// Project returns the point distanceKm away from origin on bearingDeg.
func (s *FootprintService) Project(origin domain.GeoPoint, distanceKm, bearingDeg float64) domain.GeoPoint {
	lat, lon := geospatial.Destination(s.params.EarthRadiusKm, origin.Lat, origin.Lon, distanceKm, bearingDeg)
	return domain.GeoPoint{Lat: lat, Lon: lon}
}

// Distance returns the great-circle distance between a and b in meters.
func (s *FootprintService) Distance(a, b domain.GeoPoint) float64 {
	return geospatial.Haversine(s.params.EarthRadiusKm, a.Lat, a.Lon, b.Lat, b.Lon)
}

// WithinVisibilityRange reports whether feature is close enough to step to
// be interacted with.
func (s *FootprintService) WithinVisibilityRange(step, feature domain.GeoPoint) bool {
	return s.CheckVisibility(step, feature).InRange
}

// CheckVisibility is WithinVisibilityRange with the measured distance.
func (s *FootprintService) CheckVisibility(step, feature domain.GeoPoint) domain.Visibility {
	d := s.Distance(step, feature)
	v := domain.Visibility{
		Step:           step,
		Feature:        feature,
		DistanceMeters: d,
		InRange:        d <= s.params.VisibilityRadiusMeters,
	}
	for _, o := range s.observers {
		o.ObserveVisibility(v)
	}
	return v
}

// VisibleFeatures returns the checks for features within range of step,
// in input order.
func (s *FootprintService) VisibleFeatures(step domain.GeoPoint, features []domain.GeoPoint) []domain.Visibility {
	var out []domain.Visibility
	for _, f := range features {
		if v := s.CheckVisibility(step, f); v.InRange {
			out = append(out, v)
		}
	}
	return out
}

// RouteFootprints returns the footprint of every step, in input order.
func (s *FootprintService) RouteFootprints(steps []domain.GeoPoint) []domain.StepFootprint {
	out := make([]domain.StepFootprint, len(steps))
	for i, step := range steps {
		out[i] = domain.StepFootprint{
			Step:  step,
			Cell:  s.LocationCell(step),
			Range: s.CellRange(step),
		}
	}
	return out
}

// RouteRanges returns the cell range of every step, in input order.
func (s *FootprintService) RouteRanges(steps []domain.GeoPoint) []domain.CellRange {
	ranges := make([]domain.CellRange, len(steps))
	for i, step := range steps {
		ranges[i] = s.CellRange(step)
	}
	return ranges
}

// UnseenFeatures returns the features not covered by any of ranges, in
// input order.
func (s *FootprintService) UnseenFeatures(features []domain.GeoPoint, ranges []domain.CellRange) []domain.GeoPoint {
	var out []domain.GeoPoint
	for _, f := range features {
		if !s.AlreadySeen(f, ranges) {
			out = append(out, f)
		}
	}
	return out
}

func (s *FootprintService) cell(id domain.CellID) domain.Cell {
	return domain.Cell{
		ID:     id,
		Level:  s.index.Level(id),
		Token:  s.index.Token(id),
		Center: s.index.Center(id),
	}
}
