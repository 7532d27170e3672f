package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/natevvv/osm-road-export/pkg/road"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var records = []road.Record{
	{RoadName: "Main St", From: "37.7;-122.1", To: "37.8;-122.0", LengthKm: 14.175, SpeedLimitKmH: "60"},
	{RoadName: "Elm St", From: "37.6;-122.2", To: "37.7;-122.3", LengthKm: 12, SpeedLimitKmH: "45"},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	expected := "RoadName;From;To;LengthKm;SpeedLimitKmH\n" +
		"Main St;\"37.7;-122.1\";\"37.8;-122.0\";14.175;60\n" +
		"Elm St;\"37.6;-122.2\";\"37.7;-122.3\";12.0;45\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSVQuoting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []road.Record{
		{RoadName: `Rue "du" Bac; Nord`, From: "1.0;2.0", To: "1.0;2.0", LengthKm: 0, SpeedLimitKmH: "30 mph"},
	}))

	expected := "RoadName;From;To;LengthKm;SpeedLimitKmH\n" +
		"\"Rue \"\"du\"\" Bac; Nord\";\"1.0;2.0\";\"1.0;2.0\";0.0;30 mph\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "RoadName;From;To;LengthKm;SpeedLimitKmH\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, records))

	var decoded []road.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, records, decoded)
	assert.Contains(t, buf.String(), `"SpeedLimitKmH": "60"`)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)
	assert.Equal(t, "text/csv; charset=utf-8", f.ContentType())

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", f.ContentType())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestExportFileOverwrites(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "roads.csv")
	require.NoError(t, os.WriteFile(filename, []byte("stale content that is longer than the new table\n"), 0o644))

	require.NoError(t, ExportFile(filename, CSV, records[:1]))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "RoadName;From;To;LengthKm;SpeedLimitKmH\nMain St;\"37.7;-122.1\";\"37.8;-122.0\";14.175;60\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(filename))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestExportFileIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	require.NoError(t, ExportFile(first, CSV, records))
	require.NoError(t, ExportFile(second, CSV, records))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExportFileMissingDirectory(t *testing.T) {
	err := ExportFile(filepath.Join(t.TempDir(), "missing", "roads.csv"), CSV, records)
	assert.Error(t, err)
}
