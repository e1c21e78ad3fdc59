// Curatus - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tomtom215/curatus/internal/logging"
)

// Context keys for the api package.
type contextKey string

// sessionIDKey is the context key for the request's session ID.
const sessionIDKey contextKey = "session_id"

// EnsureSession returns middleware that assigns every request an anonymous
// session ID carried in a browser cookie.
//
// An incoming request with a valid session cookie keeps its ID. A request
// without one, or with a cookie value that is not a UUID, gets a fresh
// UUID v4 and a Set-Cookie response header. The cookie is HttpOnly with
// SameSite=Lax and no expiry, so it lives for the browser session; the
// secure flag follows the deployment configuration.
//
// Handlers read the assigned ID through SessionIDFromContext.
func EnsureSession(cookieName string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if c, err := r.Cookie(cookieName); err == nil {
				// Reject forged or corrupted cookie values rather than
				// letting them become session store keys
				if _, parseErr := uuid.Parse(c.Value); parseErr == nil {
					sessionID = c.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
				logging.CtxDebug(r.Context()).
					Str("session_id", logging.SanitizeSessionID(sessionID)).
					Msg("New session created")
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext retrieves the session ID assigned by EnsureSession.
// Returns empty string when the middleware did not run, which handlers
// treat the same as an unavailable session store.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
