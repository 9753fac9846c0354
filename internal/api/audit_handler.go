// File path: internal/api/audit_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/NicoLafakis/HubAuditor9001/internal/audit"
	"github.com/NicoLafakis/HubAuditor9001/internal/common"
	"github.com/NicoLafakis/HubAuditor9001/internal/hubspot"
	"github.com/NicoLafakis/HubAuditor9001/internal/llm"
	"github.com/NicoLafakis/HubAuditor9001/internal/sqlite"
)

type auditRequest struct {
	AuditType      string                `json:"auditType"`
	HubSpotToken   string                `json:"hubspotToken"`
	TokenName      string                `json:"tokenName"`
	AccountContext *audit.AccountContext `json:"accountContext"`
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	ctx := r.Context()
	claims := sessionClaims(r)

	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	auditType, err := audit.ParseType(req.AuditType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token := strings.TrimSpace(req.HubSpotToken)
	if token == "" && req.TokenName != "" {
		token, err = s.store.GetToken(ctx, claims.UserID, req.TokenName)
		if errors.Is(err, sqlite.ErrNotFound) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("stored token %q not found", req.TokenName))
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	if token == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing required fields: auditType and hubspotToken"))
		return
	}

	var source audit.RecordSource
	if token == hubspot.DemoToken {
		source = hubspot.MockSource{}
	} else {
		client := hubspot.NewClient(token, s.crmConfig)
		if !client.TestConnection(ctx) {
			writeError(w, http.StatusUnauthorized, fmt.Errorf("failed to connect to HubSpot, check your API token"))
			return
		}
		source = client
	}

	logger.Info("api: audit requested",
		"user_id", claims.UserID, "audit_type", string(auditType), "demo", token == hubspot.DemoToken)

	result, err := s.runner.Run(ctx, auditType, source, req.AccountContext)
	if err != nil {
		s.writeAuditError(w, err)
		return
	}

	if err := s.store.RecordAudit(ctx, claims.UserID, string(auditType)); err != nil {
		logger.Error("api: record audit history failed", "error", err)
	}
	writeJSON(w, http.StatusOK, result)
}

// writeAuditError maps pipeline failures onto response statuses: CRM token
// problems are the caller's to fix, generation failures carry their taxonomy
// status, everything else is a plain 500.
func (s *Server) writeAuditError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hubspot.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, fmt.Errorf("failed to connect to HubSpot, check your API token"))
	case errors.Is(err, hubspot.ErrForbidden):
		writeError(w, http.StatusForbidden, fmt.Errorf("the HubSpot token is missing required scopes"))
	case errors.Is(err, hubspot.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, fmt.Errorf("HubSpot rate limit exceeded, try again shortly"))
	case errors.Is(err, llm.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, fmt.Errorf("%s", llm.UserFacingMessage(err)))
	case errors.Is(err, llm.ErrUpstream):
		writeError(w, http.StatusBadGateway, fmt.Errorf("%s", llm.UserFacingMessage(err)))
	case errors.Is(err, llm.ErrInvalidCredentials):
		writeError(w, http.StatusInternalServerError, fmt.Errorf("%s", llm.UserFacingMessage(err)))
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleAuditHistory(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r)
	records, err := s.store.ListAudits(r.Context(), claims.UserID, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []sqlite.AuditRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"audits": records})
}
