// Eventgraph - Event Recommendation and Social Graph Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventgraph

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/eventgraph/internal/models"
	"github.com/tomtom215/eventgraph/internal/service"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean string", "normal-id-123", "normal-id-123"},
		{"newline injection", "user\nFORGED LOG LINE", "user\\x0aFORGED LOG LINE"},
		{"carriage return", "id\r", "id\\x0d"},
		{"tab", "a\tb", "a\\x09b"},
		{"delete char", "x\x7fy", "x\\x7fy"},
		{"unicode preserved", "café-日本", "café-日本"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sanitizeLogValue(tt.input); got != tt.expected {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	first := generateETag([]byte(`{"status":"success"}`))
	second := generateETag([]byte(`{"status":"success"}`))
	different := generateETag([]byte(`{"status":"error"}`))

	if first != second {
		t.Errorf("same data produced different ETags: %q vs %q", first, second)
	}
	if first == different {
		t.Error("different data produced the same ETag")
	}
	if first == "" {
		t.Error("ETag should not be empty")
	}
}

func TestRespondJSON_Headers(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Metadata: models.Metadata{Timestamp: time.Unix(0, 0)},
	})

	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if got := w.Header().Get("ETag"); got == "" {
		t.Error("ETag header should be set")
	}
	if got := w.Header().Get("Vary"); got != "Accept-Encoding" {
		t.Errorf("Vary = %q, want Accept-Encoding", got)
	}
	// Mutation-heavy API: responses must not be cached blindly.
	if got := w.Header().Get("Cache-Control"); got != "" {
		t.Errorf("Cache-Control = %q, want unset", got)
	}
}

func TestRespondServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            fmt.Errorf("user %q: %w", "ghost", service.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "already exists",
			err:            fmt.Errorf("user %q: %w", "maya", service.ErrAlreadyExists),
			expectedStatus: http.StatusConflict,
			expectedCode:   "ALREADY_EXISTS",
		},
		{
			name:           "invalid rating",
			err:            fmt.Errorf("rating %d: %w", 9, service.ErrInvalidRating),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_RATING",
		},
		{
			name:           "persistence failure",
			err:            fmt.Errorf("%w: disk full", service.ErrPersistenceFailure),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "PERSISTENCE_ERROR",
		},
		{
			name:           "unknown error",
			err:            errors.New("something else"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			respondServiceError(w, tt.err)
			assertErrorCode(t, w, tt.expectedStatus, tt.expectedCode)
		})
	}
}

func TestRespondServiceError_HidesInternalDetail(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondServiceError(w, errors.New("dial tcp 10.0.0.5: connection refused"))

	resp := decodeEnvelope(t, w)
	if resp.Error.Message != "Internal server error" {
		t.Errorf("Message = %q, internal detail must not leak to clients", resp.Error.Message)
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"present", "limit=25", 25},
		{"absent", "", 50},
		{"not a number", "limit=abc", 50},
		{"negative", "limit=-3", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/x?"+tt.query, nil)
			if got := getIntParam(req, "limit", 50); got != tt.expected {
				t.Errorf("getIntParam() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestParseCommaSeparated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "music", []string{"music"}},
		{"multiple", "music,comedy,theatre", []string{"music", "comedy", "theatre"}},
		{"spaces trimmed", " music , comedy ", []string{"music", "comedy"}},
		{"empty parts dropped", "music,,comedy,", []string{"music", "comedy"}},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseCommaSeparated(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseCommaSeparated(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
