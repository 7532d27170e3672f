package geometry

import "math"

// EarthRadius is the mean earth radius in kilometers.
const EarthRadius = 6371.0

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the great-circle distance between p1 and p2 in kilometers
// using the haversine formula.
func Distance(p1, p2 Point) float64 {
	lat1 := degToRad(p1.Lat())
	lat2 := degToRad(p2.Lat())
	dLat := degToRad(p2.Lat() - p1.Lat())
	dLon := degToRad(p2.Lon() - p1.Lon())

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// rounding can push a slightly outside [0, 1]
	a = math.Max(0, math.Min(1, a))

	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadius * c
}

// PolylineLength sums the distance between consecutive points in kilometers.
// Polylines with less than two points have length 0.
func PolylineLength(points []Point) float64 {
	length := 0.0
	for i := 0; i < len(points)-1; i++ {
		length += points[i].DistanceTo(points[i+1])
	}
	return length
}
