// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

// sessionProbe runs a request through EnsureSession and reports the
// session ID the inner handler observed plus the recorded response.
func sessionProbe(t *testing.T, cookieName string, secure bool, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()

	var observed string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observed = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	EnsureSession(cookieName, secure)(inner).ServeHTTP(w, req)
	return observed, w
}

// findCookie returns the named cookie from the response, or nil.
func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// TestEnsureSession_NewCookie tests session creation for a first-time client
func TestEnsureSession_NewCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	observed, w := sessionProbe(t, "reco_session_id", false, req)

	if observed == "" {
		t.Fatal("Expected handler to observe a session ID")
	}
	if _, err := uuid.Parse(observed); err != nil {
		t.Errorf("Session ID %q is not a UUID: %v", observed, err)
	}

	cookie := findCookie(w, "reco_session_id")
	if cookie == nil {
		t.Fatal("Expected a session cookie to be set")
	}
	if cookie.Value != observed {
		t.Errorf("Cookie value %q differs from observed session ID %q", cookie.Value, observed)
	}
	if !cookie.HttpOnly {
		t.Error("Expected HttpOnly cookie")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("Expected SameSite=Lax, got %v", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Errorf("Expected Path=/, got %q", cookie.Path)
	}
	if cookie.MaxAge != 0 || !cookie.Expires.IsZero() {
		t.Error("Expected a browser-session cookie without expiry")
	}
	if cookie.Secure {
		t.Error("Expected Secure to be off when not configured")
	}
}

// TestEnsureSession_ExistingCookie tests that a valid cookie is kept
func TestEnsureSession_ExistingCookie(t *testing.T) {
	t.Parallel()

	existing := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	req.AddCookie(&http.Cookie{Name: "reco_session_id", Value: existing})

	observed, w := sessionProbe(t, "reco_session_id", false, req)

	if observed != existing {
		t.Errorf("Expected session ID %q to be kept, got %q", existing, observed)
	}
	if cookie := findCookie(w, "reco_session_id"); cookie != nil {
		t.Errorf("Expected no Set-Cookie for an existing session, got %q", cookie.Value)
	}
}

// TestEnsureSession_InvalidCookie tests replacement of a forged cookie value
func TestEnsureSession_InvalidCookie(t *testing.T) {
	t.Parallel()

	values := []struct {
		name  string
		value string
	}{
		{name: "garbage", value: "not-a-uuid"},
		{name: "path traversal", value: "../../etc/passwd"},
		{name: "truncated uuid", value: uuid.NewString()[:8]},
	}

	for _, tt := range values {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
			req.AddCookie(&http.Cookie{Name: "reco_session_id", Value: tt.value})

			observed, w := sessionProbe(t, "reco_session_id", false, req)

			if observed == tt.value {
				t.Error("Expected the forged cookie value to be replaced")
			}
			if _, err := uuid.Parse(observed); err != nil {
				t.Errorf("Replacement session ID %q is not a UUID: %v", observed, err)
			}
			cookie := findCookie(w, "reco_session_id")
			if cookie == nil {
				t.Fatal("Expected a fresh session cookie to be set")
			}
			if cookie.Value != observed {
				t.Errorf("Cookie value %q differs from observed session ID %q", cookie.Value, observed)
			}
		})
	}
}

// TestEnsureSession_SecureFlag tests the Secure attribute passthrough
func TestEnsureSession_SecureFlag(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	_, w := sessionProbe(t, "reco_session_id", true, req)

	cookie := findCookie(w, "reco_session_id")
	if cookie == nil {
		t.Fatal("Expected a session cookie to be set")
	}
	if !cookie.Secure {
		t.Error("Expected Secure cookie when configured")
	}
}

// TestEnsureSession_CustomCookieName tests a non-default cookie name
func TestEnsureSession_CustomCookieName(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	_, w := sessionProbe(t, "curatus_sid", false, req)

	if findCookie(w, "curatus_sid") == nil {
		t.Error("Expected cookie under the configured name")
	}
	if findCookie(w, "reco_session_id") != nil {
		t.Error("Unexpected cookie under the default name")
	}
}

// TestSessionIDFromContext_Missing tests the fallback without middleware
func TestSessionIDFromContext_Missing(t *testing.T) {
	t.Parallel()

	if got := SessionIDFromContext(context.Background()); got != "" {
		t.Errorf("SessionIDFromContext() = %q, want empty", got)
	}
}
