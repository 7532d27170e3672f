package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cityGeojson = `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{"highway":"primary","name":"Main St"},
	 "geometry":{"type":"LineString","coordinates":[[-122.1,37.7],[-122.0,37.8]]}},
	{"type":"Feature","properties":{"highway":"footway","name":"Garden Path"},
	 "geometry":{"type":"LineString","coordinates":[[-122.1,37.7],[-122.0,37.8]]}},
	{"type":"Feature","properties":{"highway":"residential","name":""},
	 "geometry":{"type":"LineString","coordinates":[[-122.1,37.7],[-122.0,37.8]]}},
	{"type":"Feature","properties":{"highway":"secondary","name":"Elm St","maxspeed":"45"},
	 "geometry":{"type":"LineString","coordinates":[[-122.1,37.7],[-122.0,37.8]]}}
]}`

const expectedCSV = "RoadName;From;To;LengthKm;SpeedLimitKmH\n" +
	"Main St;\"37.7;-122.1\";\"37.8;-122.0\";14.175;60\n" +
	"Elm St;\"37.7;-122.1\";\"37.8;-122.0\";14.175;45\n"

func TestRunDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("city.geojson", []byte(cityGeojson), 0o644))

	var stdout bytes.Buffer
	require.Equal(t, 0, run(context.Background(), nil, &stdout))
	assert.Equal(t, "Saved 2 road segments to roads.csv\n", stdout.String())

	data, err := os.ReadFile(filepath.Join(dir, "roads.csv"))
	require.NoError(t, err)
	assert.Equal(t, expectedCSV, string(data))

	// a second run produces identical bytes
	stdout.Reset()
	require.Equal(t, 0, run(context.Background(), []string{"--workers", "4"}, &stdout))
	again, err := os.ReadFile(filepath.Join(dir, "roads.csv"))
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("roads.csv", []byte("previous run\n"), 0o644))

	var stdout bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), nil, &stdout))
	assert.Equal(t, "ERROR: File city.geojson not found.\n", stdout.String())

	data, err := os.ReadFile("roads.csv")
	require.NoError(t, err)
	assert.Equal(t, "previous run\n", string(data))
}

func TestRunMalformedInput(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("city.geojson", []byte(`{"type":"FeatureCollection","features":[`), 0o644))

	var stdout bytes.Buffer
	assert.Equal(t, 1, run(context.Background(), nil, &stdout))
	assert.Contains(t, stdout.String(), "is not a valid geojson file")

	_, err := os.Stat("roads.csv")
	assert.True(t, os.IsNotExist(err))
}

func TestRunPaths(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("sf.geojson", []byte(cityGeojson), 0o644))

	var stdout bytes.Buffer
	require.Equal(t, 0, run(context.Background(), []string{"sf.geojson", "sf.json", "--output-format", "json"}, &stdout))
	assert.Equal(t, "Saved 2 road segments to sf.json\n", stdout.String())

	data, err := os.ReadFile("sf.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"RoadName": "Elm St"`)
}

func TestRunBadFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	var stdout bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), []string{"--workers", "0"}, &stdout))
	assert.Equal(t, 2, run(context.Background(), []string{"--no-such-flag"}, &stdout))
}
