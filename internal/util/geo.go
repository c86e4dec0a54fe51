package util

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// HaversineKm computes the great-circle distance between two coordinates in
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	// Convert coordinates from degrees to S2 points
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lon1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lon2))

	// Calculate angle between points
	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	earthRadiusKm := 6371.0
	return angle.Radians() * earthRadiusKm
}

// NearestVertexKm returns the distance from (lat, lon) to the closest vertex
// of the given polylines, and the name of the polyline owning it. Returns
// ok=false when the set holds no vertices.
func NearestVertexKm(lat, lon float64, lines []NamedLine) (km float64, name string, ok bool) {
	for _, line := range lines {
		for _, v := range line.Coords {
			d := HaversineKm(lat, lon, v[0], v[1])
			if !ok || d < km {
				km, name, ok = d, line.Name, true
			}
		}
	}
	return km, name, ok
}

// NamedLine is a named polyline of (lat, lon) vertices.
type NamedLine struct {
	Name   string
	Coords [][2]float64
}
