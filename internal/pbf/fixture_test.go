package pbf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/qedus/osmpbf/OSMPBF"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

// strings referenced by index from the keys and vals of the fixture
var fixtureStrings = []string{"", "highway", "primary", "name", "Main St", "amenity", "parking", "footway", "residential", "Ghost"}

// writeFixture writes a small extract around San Francisco: three nodes in a
// first data block, four ways in a second one.
func writeFixture(t *testing.T, dir string) string {
	t.Helper()

	var buf bytes.Buffer
	writeFileBlock(t, &buf, "OSMHeader", &OSMPBF.HeaderBlock{
		RequiredFeatures: []string{"OsmSchema-V0.6"},
		Writingprogram:   proto.String("road-export tests"),
	})
	writeFileBlock(t, &buf, "OSMData", &OSMPBF.PrimitiveBlock{
		Stringtable: &OSMPBF.StringTable{S: fixtureStrings},
		Granularity: proto.Int32(100),
		Primitivegroup: []*OSMPBF.PrimitiveGroup{{
			Nodes: []*OSMPBF.Node{
				node(1, 377000000, -1221000000),
				node(2, 377500000, -1220500000),
				node(3, 378000000, -1220000000),
			},
		}},
	})
	writeFileBlock(t, &buf, "OSMData", &OSMPBF.PrimitiveBlock{
		Stringtable: &OSMPBF.StringTable{S: fixtureStrings},
		Primitivegroup: []*OSMPBF.PrimitiveGroup{{
			Ways: []*OSMPBF.Way{
				// refs are delta coded
				{Id: proto.Int64(10), Keys: []uint32{1, 3}, Vals: []uint32{2, 4}, Refs: []int64{1, 1, 1}},
				{Id: proto.Int64(11), Keys: []uint32{5}, Vals: []uint32{6}, Refs: []int64{1, 1}},
				{Id: proto.Int64(12), Keys: []uint32{1}, Vals: []uint32{7}, Refs: []int64{3, -1}},
				{Id: proto.Int64(13), Keys: []uint32{1, 3}, Vals: []uint32{8, 9}, Refs: []int64{99}},
			},
		}},
	})

	filename := filepath.Join(dir, "city.osm.pbf")
	require.NoError(t, os.WriteFile(filename, buf.Bytes(), 0o644))
	return filename
}

func node(id, lat, lon int64) *OSMPBF.Node {
	return &OSMPBF.Node{Id: proto.Int64(id), Lat: proto.Int64(lat), Lon: proto.Int64(lon)}
}

func writeFileBlock(t *testing.T, buf *bytes.Buffer, blobType string, block proto.Message) {
	t.Helper()

	data, err := proto.Marshal(block)
	require.NoError(t, err)

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	blob, err := proto.Marshal(&OSMPBF.Blob{
		RawSize: proto.Int32(int32(len(data))),
		Data:    &OSMPBF.Blob_ZlibData{ZlibData: compressed.Bytes()},
	})
	require.NoError(t, err)

	header, err := proto.Marshal(&OSMPBF.BlobHeader{
		Type:     proto.String(blobType),
		Datasize: proto.Int32(int32(len(blob))),
	})
	require.NoError(t, err)

	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(header)))
	buf.Write(size)
	buf.Write(header)
	buf.Write(blob)
}
