// File path: internal/api/admin_handler.go
package api

import (
	"net/http"

	"github.com/NicoLafakis/HubAuditor9001/internal/common"
)

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if s.currentAdmin(w, r) == nil {
		return
	}
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	if s.currentAdmin(w, r) == nil {
		return
	}
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// handleLogs serves the in-memory log ring for the admin diagnostics view.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if s.currentAdmin(w, r) == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}
