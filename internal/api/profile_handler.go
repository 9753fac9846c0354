// File path: internal/api/profile_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/NicoLafakis/HubAuditor9001/internal/auth"
	"github.com/NicoLafakis/HubAuditor9001/internal/common"
	"github.com/NicoLafakis/HubAuditor9001/internal/sqlite"
)

type passwordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	claims := sessionClaims(r)

	var req passwordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("current password and new password are required"))
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("new password must be at least 8 characters long"))
		return
	}

	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("user not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		writeError(w, http.StatusUnauthorized, fmt.Errorf("current password is incorrect"))
		return
	}

	if err := s.store.UpdatePassword(r.Context(), claims.UserID, req.NewPassword); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: password changed", "user_id", claims.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
