// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package validation

import (
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

// attendanceInput mirrors the shape of the attendance request DTO.
type attendanceInput struct {
	UserID  string `validate:"required,notblank,max=256"`
	EventID string `validate:"required,notblank,max=256"`
	Rating  *int   `validate:"omitempty,min=1,max=5"`
}

func ratingPtr(n int) *int { return &n }

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input attendanceInput
	}{
		{
			name: "all fields with rating",
			input: attendanceInput{
				UserID:  "alice",
				EventID: "comedyclash",
				Rating:  ratingPtr(4),
			},
		},
		{
			name: "rating omitted",
			input: attendanceInput{
				UserID:  "alice",
				EventID: "comedyclash",
			},
		},
		{
			name: "rating at lower bound",
			input: attendanceInput{
				UserID:  "bob",
				EventID: "workshop",
				Rating:  ratingPtr(1),
			},
		},
		{
			name: "rating at upper bound",
			input: attendanceInput{
				UserID:  "bob",
				EventID: "workshop",
				Rating:  ratingPtr(5),
			},
		},
		{
			name: "ids with surrounding whitespace",
			input: attendanceInput{
				UserID:  "  Alice ",
				EventID: " ComedyClash",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     attendanceInput
		wantField string
		wantTag   string
	}{
		{
			name: "missing user id",
			input: attendanceInput{
				EventID: "comedyclash",
			},
			wantField: "UserID",
			wantTag:   "required",
		},
		{
			name: "blank user id",
			input: attendanceInput{
				UserID:  "   ",
				EventID: "comedyclash",
			},
			wantField: "UserID",
			wantTag:   "notblank",
		},
		{
			name: "blank event id",
			input: attendanceInput{
				UserID:  "alice",
				EventID: "\t ",
			},
			wantField: "EventID",
			wantTag:   "notblank",
		},
		{
			name: "rating below range",
			input: attendanceInput{
				UserID:  "alice",
				EventID: "comedyclash",
				Rating:  ratingPtr(0),
			},
			wantField: "Rating",
			wantTag:   "min",
		},
		{
			name: "rating above range",
			input: attendanceInput{
				UserID:  "alice",
				EventID: "comedyclash",
				Rating:  ratingPtr(9),
			},
			wantField: "Rating",
			wantTag:   "max",
		},
		{
			name: "id too long",
			input: attendanceInput{
				UserID:  strings.Repeat("a", 300),
				EventID: "comedyclash",
			},
			wantField: "UserID",
			wantTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			errs := err.Errors()
			if len(errs) == 0 {
				t.Fatal("ValidationErrors should contain at least one error")
			}

			found := false
			for _, e := range errs {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, errs)
			}
		})
	}
}

// ===================================================================================================
// Notblank Validator Tests
// ===================================================================================================

type identifierInput struct {
	ID string `validate:"required,notblank"`
}

func TestNotBlankValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"plain id", "alice", false},
		{"id with inner spaces", "mads comedy night", false},
		{"id with surrounding whitespace", "  alice  ", false},
		{"single character", "a", false},
		{"spaces only", "   ", true},
		{"tabs only", "\t\t", true},
		{"mixed whitespace", " \t\n ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := identifierInput{ID: tt.id}
			err := ValidateStruct(&input)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateStruct() should have returned error for id %q", tt.id)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateStruct() returned unexpected error for id %q: %v", tt.id, err)
			}
		})
	}
}

// ===================================================================================================
// Dive Validation Tests
// ===================================================================================================

type eventInput struct {
	ID         string   `validate:"required,notblank,max=256"`
	Categories []string `validate:"omitempty,dive,notblank"`
}

func TestDiveValidation(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		wantErr    bool
	}{
		{"no categories", nil, false},
		{"empty slice", []string{}, false},
		{"valid categories", []string{"comedy", "theatre"}, false},
		{"blank category element", []string{"comedy", "   "}, true},
		{"empty category element", []string{""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := eventInput{ID: "comedyclash", Categories: tt.categories}
			err := ValidateStruct(&input)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateStruct() should have returned error for categories %v", tt.categories)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateStruct() returned unexpected error for categories %v: %v", tt.categories, err)
			}
		})
	}
}

// ===================================================================================================
// Depth Range Validation Tests
// ===================================================================================================

type depthInput struct {
	MaxDepth int `validate:"min=0,max=25"`
}

func TestDepthRangeValidation(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		wantErr bool
	}{
		{"zero depth", 0, false},
		{"typical depth", 6, false},
		{"upper bound", 25, false},
		{"negative depth", -1, true},
		{"above limit", 26, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := depthInput{MaxDepth: tt.depth}
			err := ValidateStruct(&input)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateStruct() should have returned error for depth %d", tt.depth)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateStruct() returned unexpected error for depth %d: %v", tt.depth, err)
			}
		})
	}
}

// ===================================================================================================
// ToAPIError Tests
// ===================================================================================================

func TestToAPIError_SingleError(t *testing.T) {
	input := attendanceInput{
		UserID:  "alice",
		EventID: "comedyclash",
		Rating:  ratingPtr(9),
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	if apiErr.Message == "" {
		t.Error("Expected non-empty message")
	}

	if apiErr.Details == nil {
		t.Fatal("Expected details to be set")
	}

	if apiErr.Details["field"] != "Rating" {
		t.Errorf("Expected details.field Rating, got %v", apiErr.Details["field"])
	}

	if apiErr.Details["tag"] != "max" {
		t.Errorf("Expected details.tag max, got %v", apiErr.Details["tag"])
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	input := attendanceInput{
		UserID:  "   ",
		EventID: "",
		Rating:  ratingPtr(0),
	}

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	if len(err.Errors()) < 2 {
		t.Fatalf("Expected multiple field errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}

	if apiErr.Details == nil {
		t.Fatal("Expected details to contain field information")
	}

	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("Expected details to contain 'fields' key")
	}
}

// ===================================================================================================
// Error Message Translation Tests
// ===================================================================================================

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		input       interface{}
		wantMessage string
	}{
		{
			name:        "required",
			input:       &identifierInput{},
			wantMessage: "ID is required",
		},
		{
			name:        "notblank",
			input:       &identifierInput{ID: "  "},
			wantMessage: "ID must not be blank",
		},
		{
			name: "numeric min without characters suffix",
			input: &attendanceInput{
				UserID:  "alice",
				EventID: "comedyclash",
				Rating:  ratingPtr(0),
			},
			wantMessage: "Rating must be at least 1",
		},
		{
			name: "string max with characters suffix",
			input: &identifierMaxInput{
				ID: strings.Repeat("x", 20),
			},
			wantMessage: "ID must be at most 10 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("Expected validation error")
			}

			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("Error() = %q, want substring %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

type identifierMaxInput struct {
	ID string `validate:"required,max=10"`
}

func TestValidateStruct_NonStructInput(t *testing.T) {
	err := ValidateStruct("not a struct")
	if err == nil {
		t.Fatal("ValidateStruct() should reject non-struct input")
	}

	errs := err.Errors()
	if len(errs) != 1 {
		t.Fatalf("Expected one opaque error, got %d", len(errs))
	}

	if errs[0].Tag() != "invalid" {
		t.Errorf("Tag() = %q, want %q", errs[0].Tag(), "invalid")
	}
}
