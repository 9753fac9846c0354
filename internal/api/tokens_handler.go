// File path: internal/api/tokens_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/NicoLafakis/HubAuditor9001/internal/sqlite"
)

type saveTokenRequest struct {
	TokenName string `json:"tokenName"`
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
}

type tokenNameRequest struct {
	TokenName string `json:"tokenName"`
}

func (s *Server) handleTokenList(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r)
	tokens, err := s.store.ListTokens(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if tokens == nil {
		tokens = []sqlite.TokenInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tokens": tokens})
}

func (s *Server) handleTokenSave(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r)
	var req saveTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.TokenName = strings.TrimSpace(req.TokenName)
	if req.TokenName == "" || strings.TrimSpace(req.Token) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("token name and value are required"))
		return
	}
	if err := s.store.SaveToken(r.Context(), claims.UserID, req.TokenName, req.Token, req.TokenType); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Token saved successfully"})
}

func (s *Server) handleTokenDelete(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r)
	var req tokenNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.TokenName) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("token name is required"))
		return
	}
	if err := s.store.DeleteToken(r.Context(), claims.UserID, req.TokenName); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Token deleted successfully"})
}

// handleTokenGet returns one decrypted token value for the configure flow.
func (s *Server) handleTokenGet(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r)
	var req tokenNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.TokenName) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("token name is required"))
		return
	}
	value, err := s.store.GetToken(r.Context(), claims.UserID, req.TokenName)
	if errors.Is(err, sqlite.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("token not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"tokenValue": value})
}
