package ports

import (
	"github.com/samirrijal/footprint/internal/core/domain"
)

// FootprintObserver receives the outcome of footprint checks. Implementations
// must be safe for concurrent use and must not block.
type FootprintObserver interface {
	ObserveVisibility(v domain.Visibility)
	ObserveSeenCheck(point domain.GeoPoint, ranges int, seen bool)
}
