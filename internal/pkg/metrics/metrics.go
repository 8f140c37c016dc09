package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/samirrijal/footprint/internal/core/domain"
)

var (
	// Visibility checks
	VisibilityChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "footprint",
		Subsystem: "visibility",
		Name:      "checks_total",
		Help:      "Total step-to-feature visibility checks",
	}, []string{"in_range"})

	VisibilityDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "footprint",
		Subsystem: "visibility",
		Name:      "distance_meters",
		Help:      "Distance between step and feature in visibility checks",
		Buckets:   []float64{10, 25, 50, 70, 100, 250, 500, 1000, 5000},
	})

	// Footprint coverage checks
	SeenChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "footprint",
		Subsystem: "coverage",
		Name:      "seen_checks_total",
		Help:      "Total already-seen checks against scanned cell ranges",
	}, []string{"seen"})

	SeenCheckRanges = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "footprint",
		Subsystem: "coverage",
		Name:      "ranges_per_check",
		Help:      "Number of cell ranges tested per already-seen check",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
	})
)

// Observer records footprint checks in the default Prometheus registry.
type Observer struct{}

// ObserveVisibility implements ports.FootprintObserver.
func (Observer) ObserveVisibility(v domain.Visibility) {
	VisibilityChecks.WithLabelValues(strconv.FormatBool(v.InRange)).Inc()
	VisibilityDistance.Observe(v.DistanceMeters)
}

// ObserveSeenCheck implements ports.FootprintObserver.
func (Observer) ObserveSeenCheck(_ domain.GeoPoint, ranges int, seen bool) {
	SeenChecks.WithLabelValues(strconv.FormatBool(seen)).Inc()
	SeenCheckRanges.Observe(float64(ranges))
}

// WriteTextfile writes the default registry to path in the text exposition
// format, for pickup by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
