// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

// GetValidator returns the singleton validator instance.
//
// The instance is created once and reused for every request. The
// underlying library caches struct reflection information, so sharing a
// single instance keeps validation cheap after the first call for each
// request type.
func GetValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Graph identifiers are trimmed and lowercased before lookup, so
		// a whitespace-only id would collapse to the empty key. The
		// built-in required tag accepts "   "; notblank does not.
		// RegisterValidation only fails for an empty tag name.
		_ = v.RegisterValidation("notblank", notBlank)

		validatorInstance = v
	})
	return validatorInstance
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidationError represents a single field validation failure.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the struct field name that failed validation.
func (e ValidationError) Field() string { return e.field }

// Tag returns the validation tag that failed (e.g. "required", "max").
func (e ValidationError) Tag() string { return e.tag }

// Param returns the tag parameter, if any (e.g. "5" for max=5).
func (e ValidationError) Param() string { return e.param }

// Value returns the actual value that failed validation.
func (e ValidationError) Value() interface{} { return e.value }

// Error returns the human-readable message for this failure.
func (e ValidationError) Error() string { return e.message }

// RequestValidationError aggregates the field failures from one request.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field failures.
func (e *RequestValidationError) Errors() []ValidationError { return e.errors }

// Error joins the individual field messages into one line.
func (e *RequestValidationError) Error() string {
	if len(e.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.errors))
	for _, err := range e.errors {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// APIError mirrors the models.APIError structure so that handlers can
// convert validation failures without creating an import cycle between
// this package and internal/models.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ToAPIError converts the aggregated failures into the application's
// API error format. A single failure carries its field, tag and value in
// details; multiple failures carry a "fields" list.
func (e *RequestValidationError) ToAPIError() *APIError {
	if len(e.errors) == 1 {
		err := e.errors[0]
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
			Details: map[string]interface{}{
				"field": err.Field(),
				"tag":   err.Tag(),
				"value": err.Value(),
			},
		}
	}

	fields := make([]map[string]interface{}, 0, len(e.errors))
	for _, err := range e.errors {
		fields = append(fields, map[string]interface{}{
			"field":   err.Field(),
			"tag":     err.Tag(),
			"message": err.Error(),
		})
	}

	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: e.Error(),
		Details: map[string]interface{}{
			"fields": fields,
		},
	}
}

// ValidateStruct validates s against its struct tags and returns nil
// when every field passes.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		result := &RequestValidationError{
			errors: make([]ValidationError, 0, len(validationErrs)),
		}
		for _, fieldErr := range validationErrs {
			result.errors = append(result.errors, translateError(fieldErr))
		}
		return result
	}

	// InvalidValidationError (non-struct input) and anything else the
	// library may return: report as a single opaque failure.
	return &RequestValidationError{
		errors: []ValidationError{{
			field:   "request",
			tag:     "invalid",
			message: fmt.Sprintf("invalid request: %v", err),
		}},
	}
}

// errorMessageTemplates maps tags to messages that only need the field
// name.
var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"notblank": "%s must not be blank",
}

// errorMessageWithParam maps tags to messages that need the field name
// and the tag parameter.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fieldErr validator.FieldError) ValidationError {
	field := fieldErr.Field()
	tag := fieldErr.Tag()
	param := fieldErr.Param()

	var message string
	switch {
	case tag == "min" || tag == "max":
		message = translateMinMax(fieldErr)
	default:
		if tmpl, ok := errorMessageTemplates[tag]; ok {
			message = fmt.Sprintf(tmpl, field)
		} else if tmpl, ok := errorMessageWithParam[tag]; ok {
			message = fmt.Sprintf(tmpl, field, param)
		} else {
			message = fmt.Sprintf("%s failed validation for tag %s", field, tag)
		}
	}

	return ValidationError{
		field:   field,
		tag:     tag,
		param:   param,
		value:   fieldErr.Value(),
		message: message,
	}
}

// translateMinMax distinguishes string length from numeric bounds: min
// and max apply to both, but "at least 3" reads differently for an
// identifier than for a rating.
func translateMinMax(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	param := fieldErr.Param()

	suffix := ""
	if fieldErr.Kind() == reflect.String {
		suffix = " characters"
	}

	if fieldErr.Tag() == "min" {
		return fmt.Sprintf("%s must be at least %s%s", field, param, suffix)
	}
	return fmt.Sprintf("%s must be at most %s%s", field, param, suffix)
}
