// Package geojson reads GeoJSON feature collections, such as overpass-turbo
// exports, into road features.
package geojson

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/natevvv/osm-road-export/pkg/geometry"
	"github.com/natevvv/osm-road-export/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
)

var (
	ErrInputNotFound  = errors.New("input file not found")
	ErrMalformedInput = errors.New("malformed feature collection")
)

type collection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

// ReadFile decodes the feature collection stored at filename.
func ReadFile(filename string) ([]road.Feature, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "read %s", filename), ErrInputNotFound)
		}
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	features, err := Unmarshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", filename)
	}
	return features, nil
}

func Decode(r io.Reader) ([]road.Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read feature collection")
	}
	return Unmarshal(data)
}

// Unmarshal decodes a feature collection. Only a document that is not a
// feature collection fails; a feature that cannot be decoded on its own is
// kept with an OtherGeometry so that it is rejected downstream.
func Unmarshal(data []byte) ([]road.Feature, error) {
	var c collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse"), ErrMalformedInput)
	}
	if c.Type != "FeatureCollection" {
		return nil, errors.Mark(errors.Newf("unexpected type %q", c.Type), ErrMalformedInput)
	}

	features := make([]road.Feature, 0, len(c.Features))
	for _, raw := range c.Features {
		features = append(features, decodeFeature(raw))
	}
	return features, nil
}

func decodeFeature(raw json.RawMessage) road.Feature {
	f, err := geojson.UnmarshalFeature(raw)
	if err != nil || f == nil {
		return road.Feature{Geometry: road.OtherGeometry{Kind: "invalid"}}
	}
	return road.Feature{
		ID:       featureID(f.ID),
		Tags:     tags(f.Properties),
		Geometry: convertGeometry(f.Geometry),
	}
}

func convertGeometry(g orb.Geometry) road.Geometry {
	switch g := g.(type) {
	case nil:
		return road.OtherGeometry{Kind: "none"}
	case orb.LineString:
		return road.LineGeometry{Points: geometry.FromLineString(g)}
	default:
		return road.OtherGeometry{Kind: g.GeoJSONType()}
	}
}

// tags turns the properties into tags sorted by key. Values that have no
// scalar text form are dropped.
func tags(properties geojson.Properties) osm.Tags {
	result := make(osm.Tags, 0, len(properties))
	for _, key := range slices.Sorted(maps.Keys(properties)) {
		if value, ok := propertyString(properties[key]); ok {
			result = append(result, osm.Tag{Key: key, Value: value})
		}
	}
	return result
}

func propertyString(v interface{}) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

func featureID(id interface{}) string {
	switch id := id.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}
