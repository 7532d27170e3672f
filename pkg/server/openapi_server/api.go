// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"net/http"

	"github.com/natevvv/osm-road-export/internal/export"
	"github.com/natevvv/osm-road-export/pkg/road"
)

// DefaultApiRouter defines the required methods for binding the api requests to a responses for the DefaultApi
// The DefaultApiRouter implementation should parse necessary information from the http request,
// pass the data to a DefaultApiServicer to perform the required actions, then write the service results to the http response.
type DefaultApiRouter interface {
	ExtractRoads(http.ResponseWriter, *http.Request)
	GetHealth(http.ResponseWriter, *http.Request)
}

// DefaultApiServicer defines the api actions for the DefaultApi service
type DefaultApiServicer interface {
	ExtractRoads(context.Context, RoadsRequest) (ImplResponse, error)
	GetHealth(context.Context) (ImplResponse, error)
}

// RoadsRequest carries an uploaded GeoJSON feature collection.
type RoadsRequest struct {
	FeatureCollection []byte
	Format            export.Format
}

// RoadTable is the body of a successful ExtractRoads response.
type RoadTable struct {
	Format  export.Format
	Records []road.Record
}

type Health struct {
	Status string `json:"status"`
}
