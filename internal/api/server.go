// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/NicoLafakis/HubAuditor9001/internal/auth"
	"github.com/NicoLafakis/HubAuditor9001/internal/common"
	"github.com/NicoLafakis/HubAuditor9001/internal/config"
	"github.com/NicoLafakis/HubAuditor9001/internal/hubspot"
	"github.com/NicoLafakis/HubAuditor9001/internal/llm"
	"github.com/NicoLafakis/HubAuditor9001/internal/sqlite"
	"github.com/NicoLafakis/HubAuditor9001/internal/workflow"
)

// Server is the HTTP surface of the audit dashboard: auth, token management,
// audit execution, history, and admin views.
type Server struct {
	router     chi.Router
	store      *sqlite.Store
	provider   llm.Provider
	issuer     *auth.TokenIssuer
	runner     *workflow.Runner
	crmConfig  hubspot.Config
	sessionTTL time.Duration
}

func NewServer(cfg *config.Config, store *sqlite.Store, provider llm.Provider) (*Server, error) {
	logger := common.Logger()
	providerName := "none"
	if provider != nil {
		providerName = provider.Name()
	}
	logger.Info("api: building server", "provider", providerName)

	srv := &Server{
		router:   chi.NewRouter(),
		store:    store,
		provider: provider,
		issuer:   auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL),
		runner:   workflow.NewRunner(provider),
		crmConfig: hubspot.Config{
			BaseURL:        cfg.CRM.BaseURL,
			RequestsPerSec: cfg.CRM.RequestsPerSec,
			PageLimit:      cfg.CRM.PageLimit,
		},
		sessionTTL: cfg.Auth.SessionTTL,
	}
	srv.routes()
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")

	s.router.Use(requestIDMiddleware)
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/api/auth/signup", s.handleSignup)
	s.router.Post("/api/auth/login", s.handleLogin)
	s.router.Post("/api/auth/logout", s.handleLogout)

	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/api/auth/me", s.handleMe)

		r.Get("/api/tokens", s.handleTokenList)
		r.Post("/api/tokens", s.handleTokenSave)
		r.Delete("/api/tokens", s.handleTokenDelete)
		r.Post("/api/tokens/get", s.handleTokenGet)

		r.Post("/api/profile/password", s.handlePasswordChange)

		r.Post("/api/audit", s.handleAudit)
		r.Get("/api/audit/history", s.handleAuditHistory)

		r.Get("/api/admin/stats", s.handleAdminStats)
		r.Get("/api/admin/users", s.handleAdminUsers)
		r.Get("/v1/logs", s.handleLogs)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
