package logging

import (
	"log/slog"

	"github.com/samirrijal/footprint/internal/core/domain"
)

// Observer logs footprint checks at debug level.
type Observer struct {
	Logger *slog.Logger
}

func (o Observer) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// ObserveVisibility implements ports.FootprintObserver.
func (o Observer) ObserveVisibility(v domain.Visibility) {
	o.logger().Debug("visibility check",
		"step_lat", v.Step.Lat,
		"step_lon", v.Step.Lon,
		"feature_lat", v.Feature.Lat,
		"feature_lon", v.Feature.Lon,
		"distance_m", v.DistanceMeters,
		"in_range", v.InRange,
	)
}

// ObserveSeenCheck implements ports.FootprintObserver.
func (o Observer) ObserveSeenCheck(p domain.GeoPoint, ranges int, seen bool) {
	o.logger().Debug("seen check",
		"lat", p.Lat,
		"lon", p.Lon,
		"ranges", ranges,
		"seen", seen,
	)
}
