package road

import (
	"github.com/natevvv/osm-road-export/pkg/geometry"
	"github.com/paulmach/osm"
)

const (
	HighwayKey  = "highway"
	NameKey     = "name"
	MaxSpeedKey = "maxspeed"
)

// Geometry is either a LineGeometry or an OtherGeometry.
type Geometry interface {
	isGeometry()
}

type LineGeometry struct {
	Points geometry.Polyline
}

// OtherGeometry stands for anything that is not a single line: points,
// polygons, collections, or a geometry that could not be decoded.
type OtherGeometry struct {
	Kind string
}

func (LineGeometry) isGeometry()  {}
func (OtherGeometry) isGeometry() {}

// Feature is one input entity: its tags and its geometry.
type Feature struct {
	ID       string
	Tags     osm.Tags
	Geometry Geometry
}

func (f Feature) Highway() string  { return f.Tags.Find(HighwayKey) }
func (f Feature) Name() string     { return f.Tags.Find(NameKey) }
func (f Feature) MaxSpeed() string { return f.Tags.Find(MaxSpeedKey) }
