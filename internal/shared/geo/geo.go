package geo

import "math"

// Earth radius used by the haversine fallback, kilometers.
const earthRadiusKm = 6371.0

// WGS-84 ellipsoid parameters.
const (
	semiMajorM = 6378137.0
	semiMinorM = 6356752.314245
	flattening = 1 / 298.257223563
)

// DistanceKm returns the distance between two coordinates in kilometers.
// It prefers the ellipsoidal geodesic and falls back to the spherical
// haversine formula when the geodesic iteration fails to converge.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	if d, ok := GeodesicKm(lat1, lng1, lat2, lng2); ok {
		return d
	}
	return HaversineKm(lat1, lng1, lat2, lng2)
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers, assuming a spherical earth.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// GeodesicKm returns the Vincenty inverse distance on the WGS-84 ellipsoid
// in kilometers. The second return value is false when the iteration does
// not converge (nearly antipodal points); callers should fall back to
// HaversineKm in that case.
func GeodesicKm(lat1, lng1, lat2, lng2 float64) (float64, bool) {
	if lat1 == lat2 && lng1 == lng2 {
		return 0, true
	}

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	// Reduced latitudes.
	u1 := math.Atan((1 - flattening) * math.Tan(phi1))
	u2 := math.Atan((1 - flattening) * math.Tan(phi2))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := deltaLng
	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM float64
	converged := false

	for i := 0; i < 200; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Sqrt(
			(cosU2*sinLambda)*(cosU2*sinLambda) +
				(cosU1*sinU2-sinU1*cosU2*cosLambda)*(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			// Coincident points.
			return 0, true
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha == 0 {
			// Both points on the equator.
			cos2SigmaM = 0
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		capC := flattening / 16 * cosSqAlpha * (4 + flattening*(4-3*cosSqAlpha))
		prev := lambda
		lambda = deltaLng + (1-capC)*flattening*sinAlpha*
			(sigma+capC*sinSigma*(cos2SigmaM+capC*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-prev) < 1e-12 {
			converged = true
			break
		}
	}
	if !converged {
		return 0, false
	}

	uSq := cosSqAlpha * (semiMajorM*semiMajorM - semiMinorM*semiMinorM) / (semiMinorM * semiMinorM)
	capA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	capB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := capB * sinSigma * (cos2SigmaM + capB/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			capB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	meters := semiMinorM * capA * (sigma - deltaSigma)
	return meters / 1000, true
}

// ElevationChange splits the altitude delta between two consecutive samples
// into gain and loss, both in meters and both non-negative.
func ElevationChange(alt1, alt2 float64) (gain, loss float64) {
	diff := alt2 - alt1
	if diff > 0 {
		return diff, 0
	}
	return 0, -diff
}
