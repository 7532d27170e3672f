package geometry

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Point is a geographic position stored as (lat, lon) in decimal degrees.
type Point [2]float64

// Polyline is an ordered sequence of points describing a path.
type Polyline []Point

func MakePoint(lat, lon float64) Point {
	return Point{lat, lon}
}

// FromOrb converts an orb point, which is ordered [lon, lat], into a Point.
func FromOrb(p orb.Point) Point {
	return Point{p[1], p[0]}
}

func FromLineString(ls orb.LineString) Polyline {
	polyline := make(Polyline, 0, len(ls))
	for _, p := range ls {
		polyline = append(polyline, FromOrb(p))
	}
	return polyline
}

func (p Point) Lat() float64 { return p[0] }
func (p Point) Lon() float64 { return p[1] }

func (p Point) DistanceTo(other Point) float64 {
	return Distance(p, other)
}

// String serializes the point as "lat;lon".
func (p Point) String() string {
	return FormatDecimal(p.Lat()) + ";" + FormatDecimal(p.Lon())
}

// First returns the first point of the polyline. ok is false for an empty polyline.
func (pl Polyline) First() (Point, bool) {
	if len(pl) == 0 {
		return Point{}, false
	}
	return pl[0], true
}

// Last returns the last point of the polyline. ok is false for an empty polyline.
func (pl Polyline) Last() (Point, bool) {
	if len(pl) == 0 {
		return Point{}, false
	}
	return pl[len(pl)-1], true
}

func (pl Polyline) Length() float64 {
	return PolylineLength(pl)
}

// FormatDecimal renders v with '.' as decimal separator, the shortest digits
// that round-trip, no exponent and at least one fractional digit.
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}
