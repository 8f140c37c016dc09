package geospatial

import "math"

// Destination returns the point reached by travelling distanceKm from
// (lat, lon) on the initial bearing (degrees clockwise from north), on a
// sphere of radiusKm. Longitude is not normalised and may leave [-180, 180].
func Destination(radiusKm, lat, lon, distanceKm, bearingDeg float64) (float64, float64) {
	phi1 := toRad(lat)
	lambda1 := toRad(lon)
	theta := toRad(bearingDeg)
	delta := distanceKm / radiusKm

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) +
		math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))

	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)

	return toDeg(phi2), toDeg(lambda2)
}
