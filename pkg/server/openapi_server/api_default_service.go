// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/natevvv/osm-road-export/internal/geojson"
	"github.com/natevvv/osm-road-export/internal/metrics"
	"github.com/natevvv/osm-road-export/pkg/pipeline"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
type DefaultApiService struct {
	options pipeline.Options
	metrics *metrics.Metrics
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(options pipeline.Options, m *metrics.Metrics) DefaultApiServicer {
	return &DefaultApiService{
		options: options,
		metrics: m,
	}
}

// ExtractRoads - Extract the drivable roads of a GeoJSON feature collection
func (s *DefaultApiService) ExtractRoads(ctx context.Context, req RoadsRequest) (ImplResponse, error) {
	start := time.Now()

	features, err := geojson.Unmarshal(req.FeatureCollection)
	if err != nil {
		s.metrics.ObserveFailure("malformed_input")
		return Response(http.StatusBadRequest, nil), err
	}

	result, err := pipeline.Run(ctx, features, s.options)
	if err != nil {
		s.metrics.ObserveFailure("cancelled")
		return Response(http.StatusServiceUnavailable, nil), err
	}

	elapsed := time.Since(start)
	s.metrics.ObserveRun(result.Stats, elapsed)
	slog.InfoContext(ctx, "extracted roads",
		"features", result.Stats.Features,
		"accepted", result.Stats.Accepted(),
		"rejected", result.Stats.Rejected(),
		"duration", elapsed,
	)

	return Response(http.StatusOK, RoadTable{Format: req.Format, Records: result.Records}), nil
}

func (s *DefaultApiService) GetHealth(ctx context.Context) (ImplResponse, error) {
	return Response(http.StatusOK, Health{Status: "ok"}), nil
}
