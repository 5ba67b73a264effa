package utils

import "math"

const earthRadiusMeters = 6371000

// CalculateHaversineDistance returns the great-circle distance in meters
// between two coordinates given in decimal degrees.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Geofence is a circular area around an office.
type Geofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Contains reports whether the coordinate lies within the fence radius
// (boundary inclusive) and the distance that was measured.
func (g Geofence) Contains(lat, lon float64) (bool, float64) {
	distance := CalculateHaversineDistance(lat, lon, g.Latitude, g.Longitude)
	return distance <= g.RadiusMeters, distance
}
