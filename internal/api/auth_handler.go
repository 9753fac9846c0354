// File path: internal/api/auth_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/NicoLafakis/HubAuditor9001/internal/common"
	"github.com/NicoLafakis/HubAuditor9001/internal/sqlite"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, fmt.Errorf("valid email required"))
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("password must be at least 8 characters long"))
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Email, req.Password, strings.TrimSpace(req.Name))
	if errors.Is(err, sqlite.ErrDuplicateEmail) {
		writeError(w, http.StatusConflict, fmt.Errorf("email already registered"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	token, err := s.issuer.Generate(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.setSessionCookie(w, token)
	logger.Info("api: user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("email and password required"))
		return
	}

	user, err := s.store.VerifyUser(r.Context(), req.Email, req.Password)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, fmt.Errorf("invalid email or password"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	token, err := s.issuer.Generate(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.setSessionCookie(w, token)
	logger.Info("api: user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r)
	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, fmt.Errorf("user not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
