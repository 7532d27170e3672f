// SPDX-License-Identifier: MIT

package openapi_server

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/natevvv/osm-road-export/internal/geojson"
)

// ParsingError indicates that an error has occurred when parsing request parameters
type ParsingError struct {
	Err error
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

func (e *ParsingError) Error() string {
	return e.Err.Error()
}

// TooLargeError indicates that the request body exceeded the configured limit
type TooLargeError struct {
	Limit int64
}

func (e *TooLargeError) Error() string {
	return "request body exceeds limit"
}

// ErrorHandler defines the required method for handling error. You may implement it and inject this into a controller if
// you would like errors to be handled differently from the DefaultErrorHandler
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse)

type errorBody struct {
	Error string `json:"error"`
}

// DefaultErrorHandler defines the default logic on how to handle errors from the controller. Any errors from parsing
// request params will return a StatusBadRequest. Otherwise, the error code originating from the servicer will be used.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse) {
	var parsingErr *ParsingError
	var tooLargeErr *TooLargeError
	switch {
	case errors.As(err, &tooLargeErr):
		status := http.StatusRequestEntityTooLarge
		EncodeJSONResponse(errorBody{Error: err.Error()}, &status, w)
	case errors.As(err, &parsingErr), errors.Is(err, geojson.ErrMalformedInput):
		status := http.StatusBadRequest
		EncodeJSONResponse(errorBody{Error: err.Error()}, &status, w)
	case result != nil && result.Code != 0:
		EncodeJSONResponse(errorBody{Error: err.Error()}, &result.Code, w)
	default:
		status := http.StatusInternalServerError
		EncodeJSONResponse(errorBody{Error: err.Error()}, &status, w)
	}
}
