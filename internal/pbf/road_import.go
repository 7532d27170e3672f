// Package pbf reads highway ways from OSM PBF extracts.
package pbf

import (
	"io"
	"io/fs"
	"maps"
	"os"
	"runtime"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/natevvv/osm-road-export/pkg/geometry"
	"github.com/natevvv/osm-road-export/pkg/road"
	"github.com/paulmach/osm"
	"github.com/qedus/osmpbf"
)

var (
	ErrInputNotFound  = errors.New("input file not found")
	ErrMalformedInput = errors.New("malformed pbf file")
)

// RoadImporter collects every way carrying a highway tag. The file is read
// twice: once for node coordinates, once for the ways.
type RoadImporter struct {
	filename string
	features []road.Feature
	nodes    map[int64]geometry.Point
}

func NewRoadImporter(filename string) *RoadImporter {
	return &RoadImporter{
		filename: filename,
		features: make([]road.Feature, 0),
		nodes:    make(map[int64]geometry.Point),
	}
}

// ReadFile imports filename and returns its highway features in file order.
func ReadFile(filename string) ([]road.Feature, error) {
	ri := NewRoadImporter(filename)
	if err := ri.Import(); err != nil {
		return nil, err
	}
	return ri.Features(), nil
}

func (ri *RoadImporter) Import() error {
	if _, err := os.Stat(ri.filename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Mark(errors.Wrapf(err, "read %s", ri.filename), ErrInputNotFound)
		}
		return errors.Wrapf(err, "read %s", ri.filename)
	}

	err := ri.scan(func(v interface{}) {
		if node, ok := v.(*osmpbf.Node); ok {
			ri.nodes[node.ID] = geometry.MakePoint(node.Lat, node.Lon)
		}
	})
	if err != nil {
		return err
	}

	err = ri.scan(func(v interface{}) {
		if way, ok := v.(*osmpbf.Way); ok {
			if _, ok := way.Tags[road.HighwayKey]; ok {
				ri.features = append(ri.features, wayFeature(way, ri.nodes))
			}
		}
	})
	// coordinates are no longer needed once the ways are resolved
	ri.nodes = make(map[int64]geometry.Point)
	return err
}

func (ri *RoadImporter) Features() []road.Feature {
	return ri.features
}

func (ri *RoadImporter) scan(visit func(v interface{})) error {
	file, err := os.Open(ri.filename)
	if err != nil {
		return errors.Wrapf(err, "open %s", ri.filename)
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return errors.Mark(errors.Wrapf(err, "decode %s", ri.filename), ErrMalformedInput)
	}

	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "decode %s", ri.filename), ErrMalformedInput)
		}
		visit(v)
	}
}

// wayFeature builds a feature from a way. Nodes missing from the extract are
// skipped, so a way without any resolved node ends up with an empty line.
func wayFeature(way *osmpbf.Way, nodes map[int64]geometry.Point) road.Feature {
	points := make(geometry.Polyline, 0, len(way.NodeIDs))
	for _, nodeID := range way.NodeIDs {
		if point, ok := nodes[nodeID]; ok {
			points = append(points, point)
		}
	}

	tags := make(osm.Tags, 0, len(way.Tags))
	for _, key := range slices.Sorted(maps.Keys(way.Tags)) {
		tags = append(tags, osm.Tag{Key: key, Value: way.Tags[key]})
	}

	return road.Feature{
		ID:       osm.WayID(way.ID).FeatureID().String(),
		Tags:     tags,
		Geometry: road.LineGeometry{Points: points},
	}
}
