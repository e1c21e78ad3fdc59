// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// TestChoice_Success tests recording a choice and getting recommendations
func TestChoice_Success(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)
	sessionID := uuid.NewString()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(`{"movieId": 1}`))
	req = withSession(req, sessionID)
	w := httptest.NewRecorder()

	handler.Choice(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	response := decodeResponse(t, w)
	if response.Status != "success" {
		t.Errorf("Expected status 'success', got '%s'", response.Status)
	}

	// Neighbors of A ranked by score: B (0.9) then C (0.1).
	titles := recommendationTitles(t, response)
	want := []string{"B", "C"}
	if len(titles) != len(want) {
		t.Fatalf("Expected %v, got %v", want, titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("recommendations[%d] = %q, want %q", i, titles[i], want[i])
		}
	}
}

// TestChoice_HistoryAccumulates tests that repeated choices build up the
// session history and history items are excluded from recommendations
func TestChoice_HistoryAccumulates(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)
	sessionID := uuid.NewString()

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(body))
		req = withSession(req, sessionID)
		w := httptest.NewRecorder()
		handler.Choice(w, req)
		return w
	}

	if w := post(`{"movieId": 1}`); w.Code != http.StatusOK {
		t.Fatalf("First choice: expected status 200, got %d", w.Code)
	}

	w := post(`{"movieId": 2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Second choice: expected status 200, got %d", w.Code)
	}

	// History is now {1, 2}; only C remains recommendable.
	titles := recommendationTitles(t, decodeResponse(t, w))
	if len(titles) != 1 || titles[0] != "C" {
		t.Errorf("Expected [C] after choosing A and B, got %v", titles)
	}
}

// TestChoice_SessionIsolation tests that histories do not leak between sessions
func TestChoice_SessionIsolation(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(`{"movieId": 1}`))
	first = withSession(first, uuid.NewString())
	handler.Choice(httptest.NewRecorder(), first)

	// A different session sees no accumulated history, so choosing B
	// still recommends C only (the single neighbor of B).
	second := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(`{"movieId": 2}`))
	second = withSession(second, uuid.NewString())
	w := httptest.NewRecorder()
	handler.Choice(w, second)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	titles := recommendationTitles(t, decodeResponse(t, w))
	if len(titles) != 1 || titles[0] != "C" {
		t.Errorf("Expected [C] for a fresh session choosing B, got %v", titles)
	}
}

// TestChoice_InvalidJSON tests malformed request bodies
func TestChoice_InvalidJSON(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)

	bodies := []struct {
		name string
		body string
	}{
		{name: "not json", body: "not json"},
		{name: "truncated object", body: `{"movieId":`},
		{name: "wrong type", body: `{"movieId": "one"}`},
		{name: "empty body", body: ""},
	}

	for _, tt := range bodies {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(tt.body))
			req = withSession(req, uuid.NewString())
			w := httptest.NewRecorder()

			handler.Choice(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			response := decodeResponse(t, w)
			if response.Error == nil || response.Error.Code != "INVALID_JSON" {
				t.Errorf("Expected code INVALID_JSON, got %+v", response.Error)
			}
		})
	}
}

// TestChoice_ValidationError tests body validation failures
func TestChoice_ValidationError(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)

	bodies := []struct {
		name string
		body string
	}{
		{name: "missing movieId", body: `{}`},
		{name: "zero movieId", body: `{"movieId": 0}`},
		{name: "negative movieId", body: `{"movieId": -3}`},
	}

	for _, tt := range bodies {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(tt.body))
			req = withSession(req, uuid.NewString())
			w := httptest.NewRecorder()

			handler.Choice(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			response := decodeResponse(t, w)
			if response.Error == nil || response.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("Expected code VALIDATION_ERROR, got %+v", response.Error)
			}
		})
	}
}

// TestChoice_MovieNotFound tests choosing a movie absent from the catalog
func TestChoice_MovieNotFound(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(`{"movieId": 999}`))
	req = withSession(req, uuid.NewString())
	w := httptest.NewRecorder()

	handler.Choice(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}

	response := decodeResponse(t, w)
	if response.Error == nil {
		t.Fatal("Expected error payload")
	}
	if response.Error.Code != "MOVIE_NOT_FOUND" {
		t.Errorf("Expected code MOVIE_NOT_FOUND, got %s", response.Error.Code)
	}
	if response.Error.Message != "Movie ID 999 not found." {
		t.Errorf("Unexpected message: %s", response.Error.Message)
	}
}

// TestChoice_WithoutSessionStore tests the degraded path with no store.
// The choice cannot be recorded, so recommendations come from an empty
// history, but the request still succeeds.
func TestChoice_WithoutSessionStore(t *testing.T) {
	t.Parallel()

	handler := NewHandler(testEngine(t), nil, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(`{"movieId": 1}`))
	req = withSession(req, uuid.NewString())
	w := httptest.NewRecorder()

	handler.Choice(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	titles := recommendationTitles(t, decodeResponse(t, w))
	if len(titles) != 0 {
		t.Errorf("Expected no recommendations from empty history, got %v", titles)
	}
}

// TestChoice_WithoutSessionID tests a request that never passed through
// the session middleware
func TestChoice_WithoutSessionID(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(`{"movieId": 1}`))
	w := httptest.NewRecorder()

	handler.Choice(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	titles := recommendationTitles(t, decodeResponse(t, w))
	if len(titles) != 0 {
		t.Errorf("Expected no recommendations without a session, got %v", titles)
	}
}

// TestChoice_MethodNotAllowed tests Choice with invalid HTTP methods
func TestChoice_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/choice", nil)
	w := httptest.NewRecorder()

	handler.Choice(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

// TestReset_Success tests clearing a session with recorded history
func TestReset_Success(t *testing.T) {
	t.Parallel()

	engine := testEngine(t)
	store := testStore(t)
	handler := NewHandler(engine, store, testConfig())
	sessionID := uuid.NewString()

	choice := httptest.NewRequest(http.MethodPost, "/api/v1/choice", strings.NewReader(`{"movieId": 1}`))
	choice = withSession(choice, sessionID)
	handler.Choice(httptest.NewRecorder(), choice)

	history, err := store.GetHistory(sessionID)
	if err != nil || len(history) != 1 {
		t.Fatalf("GetHistory() = %v, %v, want one recorded choice", history, err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reset", nil)
	req = withSession(req, sessionID)
	w := httptest.NewRecorder()

	handler.Reset(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	response := decodeResponse(t, w)
	data, ok := response.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data object, got %T", response.Data)
	}
	if data["message"] != "Session history cleared successfully." {
		t.Errorf("Unexpected message: %v", data["message"])
	}

	history, err = store.GetHistory(sessionID)
	if err != nil {
		t.Fatalf("GetHistory() after reset error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history after reset, got %v", history)
	}
}

// TestReset_EmptySession tests resetting a session with no history
func TestReset_EmptySession(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reset", nil)
	req = withSession(req, uuid.NewString())
	w := httptest.NewRecorder()

	handler.Reset(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for empty session, got %d", w.Code)
	}
}

// TestReset_WithoutSessionStore tests that reset reports success even
// when the store is unavailable
func TestReset_WithoutSessionStore(t *testing.T) {
	t.Parallel()

	handler := NewHandler(testEngine(t), nil, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reset", nil)
	req = withSession(req, uuid.NewString())
	w := httptest.NewRecorder()

	handler.Reset(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	response := decodeResponse(t, w)
	if response.Status != "success" {
		t.Errorf("Expected status 'success', got '%s'", response.Status)
	}
}

// TestReset_MethodNotAllowed tests Reset with invalid HTTP methods
func TestReset_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reset", nil)
	w := httptest.NewRecorder()

	handler.Reset(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}
