// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a
// thread-safe singleton validator instance with custom validators and
// user-friendly error messages. It integrates with the application's API
// error format for consistent error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - A notblank validator for graph identifiers
//   - Error translation to human-readable messages
//   - APIError conversion matching the application's error format
//
// # Quick Start
//
//	type CreateEventRequest struct {
//	    ID         string   `validate:"required,notblank,max=256"`
//	    Categories []string `validate:"omitempty,dive,notblank"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req CreateEventRequest
//	    if err := json.Decode(r.Body, &req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Validation Tags Used Here
//
// Identifier validations:
//   - required: Field must be present and non-zero
//   - notblank: Field must contain at least one non-whitespace character.
//     Graph identifiers are trimmed and lowercased before lookup, so a
//     whitespace-only id would collapse to the empty key; required alone
//     does not catch that.
//   - max=n: Maximum length n characters
//
// Numeric validations:
//   - min=n / max=n: Inclusive bounds, e.g. ratings carry min=1,max=5 and
//     traversal depths carry min=0,max=25
//   - omitempty: Skip remaining tags when the field is nil or zero, used
//     for optional ratings (*int) and optional query parameters
//
// # Error Types
//
// ValidationError represents a single field validation failure:
//
//	type ValidationError struct {
//	    Field()   string      // Struct field name
//	    Tag()     string      // Validation tag that failed
//	    Param()   string      // Tag parameter (e.g., "5" for max=5)
//	    Value()   interface{} // Actual value that failed
//	    Error()   string      // Human-readable message
//	}
//
// RequestValidationError aggregates multiple field errors:
//
//	type RequestValidationError struct {
//	    Errors() []ValidationError
//	    Error()  string           // Combined message
//	    ToAPIError() *APIError    // Convert to API error format
//	}
//
// # API Error Integration
//
// The ToAPIError method produces errors matching the application format:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "Rating must be at most 5",
//	    "details": {"field": "Rating", "tag": "max", "value": 9}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "UserID must not be blank; Rating must be at least 1",
//	    "details": {
//	        "fields": [
//	            {"field": "UserID", "tag": "notblank", "message": "..."},
//	            {"field": "Rating", "tag": "min", "message": "..."}
//	        ]
//	    }
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # See Also
//
//   - internal/api: Request handlers using validation
//   - internal/models: Request DTOs carrying the validate tags
//   - github.com/go-playground/validator/v10: Underlying library
package validation
