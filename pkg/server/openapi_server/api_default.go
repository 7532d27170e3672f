// SPDX-License-Identifier: MIT

package openapi_server

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/natevvv/osm-road-export/internal/export"
)

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
	maxBodyBytes int64
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// WithMaxBodyBytes limits the size of uploaded feature collections
func WithMaxBodyBytes(n int64) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.maxBodyBytes = n
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
		maxBodyBytes: 64 << 20,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"ExtractRoads",
			strings.ToUpper("Post"),
			"/roads",
			c.ExtractRoads,
		},
		{
			"GetHealth",
			strings.ToUpper("Get"),
			"/healthz",
			c.GetHealth,
		},
	}
}

// ExtractRoads - Extract the drivable roads of a GeoJSON feature collection
func (c *DefaultApiController) ExtractRoads(w http.ResponseWriter, r *http.Request) {
	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(export.CSV)
	}
	format, err := export.ParseFormat(formatParam)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, c.maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.errorHandler(w, r, &TooLargeError{Limit: maxBytesErr.Limit}, nil)
			return
		}
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}

	result, err := c.service.ExtractRoads(r.Context(), RoadsRequest{FeatureCollection: body, Format: format})
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	table, ok := result.Body.(RoadTable)
	if !ok {
		EncodeJSONResponse(result.Body, &result.Code, w)
		return
	}
	// If no error, encode the table and the result code
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", table.Format.ContentType())
	w.Header().Set("X-Road-Count", strconv.Itoa(len(table.Records)))
	w.WriteHeader(result.Code)
	if err := export.Write(w, table.Format, table.Records); err != nil {
		slog.ErrorContext(r.Context(), "write road table", "format", table.Format, "records", len(table.Records), "error", err)
	}
}

func (c *DefaultApiController) GetHealth(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetHealth(r.Context())
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	EncodeJSONResponse(result.Body, &result.Code, w)
}
