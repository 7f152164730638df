// Package api - Request and response types for the HTTP API
package api

import (
	"mileage/core/types"
)

// CalculateRequest is the body of POST /calculate.
// The profile is chosen by Region when set, else by Coordinates, else the
// default region is used.
type CalculateRequest struct {
	Region      string             `json:"region,omitempty"`
	Coordinates *types.Coordinates `json:"coordinates,omitempty"`

	types.TripInput

	// UseSuggestedPrice replaces unit_price with the region's quoted price
	UseSuggestedPrice bool `json:"use_suggested_price,omitempty"`
}

// CalculateResponse is the result of POST /calculate
type CalculateResponse struct {
	Region types.Profile        `json:"region"`
	Source types.LocationSource `json:"source"`
	Input  types.TripInput      `json:"input"`
	Result *types.Result        `json:"result"`
	Labels types.Labels         `json:"labels"`
}

// BatchRequest is the body of POST /calculate/batch
type BatchRequest struct {
	Region string            `json:"region,omitempty"`
	Trips  []types.TripInput `json:"trips"`
}

// BatchEntry is one trip of a batch response
type BatchEntry struct {
	Index  int           `json:"index"`
	Result *types.Result `json:"result,omitempty"`
	Error  *ErrorBody    `json:"error,omitempty"`
}

// BatchResponse is the result of POST /calculate/batch
type BatchResponse struct {
	Region   types.Profile `json:"region"`
	Trips    []BatchEntry  `json:"trips"`
	Computed int           `json:"computed"`
	Rejected int           `json:"rejected"`
}

// FieldError names a rejected input field
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ErrorBody is the error payload of every failed request
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// ErrorResponse wraps ErrorBody
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
