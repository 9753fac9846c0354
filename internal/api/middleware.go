// File path: internal/api/middleware.go
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/NicoLafakis/HubAuditor9001/internal/auth"
	"github.com/NicoLafakis/HubAuditor9001/internal/sqlite"
)

// sessionCookie is the HttpOnly cookie carrying the signed session token.
const sessionCookie = "auth-token"

type contextKey string

const (
	claimsKey    contextKey = "claims"
	requestIDKey contextKey = "request_id"
)

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// requireAuth rejects requests without a valid session cookie and stashes the
// verified claims on the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, fmt.Errorf("not authenticated"))
			return
		}
		claims := s.issuer.Verify(cookie.Value)
		if claims == nil {
			writeError(w, http.StatusUnauthorized, fmt.Errorf("invalid token"))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

func sessionClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}

// currentAdmin loads the requesting user and verifies the admin role. Writes
// the error response itself and returns nil when access is denied.
func (s *Server) currentAdmin(w http.ResponseWriter, r *http.Request) *sqlite.User {
	claims := sessionClaims(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, fmt.Errorf("not authenticated"))
		return nil
	}
	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil || !user.IsAdmin() {
		writeError(w, http.StatusForbidden, fmt.Errorf("admin access required"))
		return nil
	}
	return user
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.sessionTTL.Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
