package venues

import "math"

// NeutralProximity is used when no user location is available. Candidates are
// then ranked on name similarity alone without punishing them for distance.
const NeutralProximity = 0.5

// Haversine calculates the distance in meters between two lat/lng points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	const R = 6371000 // Earth radius in meters
	rad := math.Pi / 180.0

	lat1Rad := lat1 * rad
	lng1Rad := lng1 * rad
	lat2Rad := lat2 * rad
	lng2Rad := lng2 * rad

	dlng := lng2Rad - lng1Rad
	dlat := lat2Rad - lat1Rad

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dlng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// DistanceKM calculates the distance in kilometers between two lat/lng points.
func DistanceKM(lat1, lng1, lat2, lng2 float64) float64 {
	return Haversine(lat1, lng1, lat2, lng2) / 1000.0
}

// ProximityScore maps a distance onto [0,1] with a linear decay: 1 at the
// venue itself, 0 at or beyond maxDistanceKM.
func ProximityScore(distanceKM, maxDistanceKM float64) float64 {
	if maxDistanceKM <= 0 {
		return NeutralProximity
	}
	if distanceKM < 0 {
		distanceKM = 0
	}
	if distanceKM >= maxDistanceKM {
		return 0
	}
	return 1 - distanceKM/maxDistanceKM
}
