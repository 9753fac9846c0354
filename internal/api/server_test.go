// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoLafakis/HubAuditor9001/internal/auth"
	"github.com/NicoLafakis/HubAuditor9001/internal/config"
	"github.com/NicoLafakis/HubAuditor9001/internal/llm"
	"github.com/NicoLafakis/HubAuditor9001/internal/sqlite"
)

func newTestServer(t *testing.T) (*Server, *sqlite.Store) {
	t.Helper()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "api-test-secret",
			EncryptionKey: "api-test-encryption-key",
			SessionTTL:    time.Hour,
		},
		CRM: config.CRMConfig{
			BaseURL:        "https://api.hubapi.com",
			RequestsPerSec: 10,
			PageLimit:      100,
		},
	}
	cipher, err := auth.NewTokenCipher(cfg.Auth.EncryptionKey)
	require.NoError(t, err)
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"), cipher)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// No API key configured, so the provider falls back to the local stub.
	srv, err := NewServer(cfg, store, llm.NewProvider(config.LLMConfig{}))
	require.NoError(t, err)
	return srv, store
}

func doJSON(t *testing.T, srv *Server, method, path string, cookie *http.Cookie, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func sessionFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth-token" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func signupUser(t *testing.T, srv *Server, email string) *http.Cookie {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/signup", nil, map[string]string{
		"email":    email,
		"password": "long-enough-pass",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return sessionFrom(t, rec)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSignupValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/signup", nil, map[string]string{
		"email": "not-an-email", "password": "long-enough-pass",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/signup", nil, map[string]string{
		"email": "short@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	signupUser(t, srv, "dup@example.com")
	rec = doJSON(t, srv, http.MethodPost, "/api/auth/signup", nil, map[string]string{
		"email": "dup@example.com", "password": "long-enough-pass",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginAndMe(t *testing.T) {
	srv, _ := newTestServer(t)
	signupUser(t, srv, "alice@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email": "alice@example.com", "password": "long-enough-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionFrom(t, rec)

	rec = doJSON(t, srv, http.MethodGet, "/api/auth/me", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice@example.com", body.User.Email)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/auth/me", "/api/tokens", "/api/audit/history"} {
		rec := doJSON(t, srv, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	// A forged token is rejected the same way as a missing one.
	rec := doJSON(t, srv, http.MethodGet, "/api/auth/me",
		&http.Cookie{Name: "auth-token", Value: "not-a-jwt"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := signupUser(t, srv, "tokens@example.com")

	rec := doJSON(t, srv, http.MethodGet, "/api/tokens", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tokens":[]}`, rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/api/tokens", cookie, map[string]string{
		"tokenName": "production", "token": "pat-na1-secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/tokens", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Tokens []struct {
			TokenName string `json:"tokenName"`
			TokenType string `json:"tokenType"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Tokens, 1)
	assert.Equal(t, "production", list.Tokens[0].TokenName)
	assert.Equal(t, "hubspot", list.Tokens[0].TokenType)

	rec = doJSON(t, srv, http.MethodPost, "/api/tokens/get", cookie, map[string]string{
		"tokenName": "production",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tokenValue":"pat-na1-secret"}`, rec.Body.String())

	rec = doJSON(t, srv, http.MethodDelete, "/api/tokens", cookie, map[string]string{
		"tokenName": "production",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/tokens/get", cookie, map[string]string{
		"tokenName": "production",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPasswordChange(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := signupUser(t, srv, "pw@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/profile/password", cookie, map[string]string{
		"currentPassword": "wrong-password", "newPassword": "another-long-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/profile/password", cookie, map[string]string{
		"currentPassword": "long-enough-pass", "newPassword": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/profile/password", cookie, map[string]string{
		"currentPassword": "long-enough-pass", "newPassword": "another-long-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email": "pw@example.com", "password": "another-long-pass",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuditDemoEndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := signupUser(t, srv, "audit@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/audit", cookie, map[string]string{
		"auditType": "not-a-type", "hubspotToken": "demo",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/audit", cookie, map[string]string{
		"auditType": "contact-quality",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/audit", cookie, map[string]string{
		"auditType": "contact-quality", "hubspotToken": "demo",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		AuditType string `json:"auditType"`
		Analysis  string `json:"analysis"`
		Sections  []struct {
			Title string `json:"title"`
			HTML  string `json:"html"`
		} `json:"sections"`
		MetricGroups []json.RawMessage `json:"metricGroups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "contact-quality", result.AuditType)
	assert.NotEmpty(t, result.Analysis)
	assert.NotEmpty(t, result.Sections)
	assert.NotEmpty(t, result.Sections[0].HTML)
	assert.NotEmpty(t, result.MetricGroups)

	// The run lands in the caller's history.
	rec = doJSON(t, srv, http.MethodGet, "/api/audit/history", cookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Audits []struct {
			AuditType string `json:"auditType"`
		} `json:"audits"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Audits, 1)
	assert.Equal(t, "contact-quality", history.Audits[0].AuditType)
}

func TestAuditUsesStoredToken(t *testing.T) {
	srv, _ := newTestServer(t)
	cookie := signupUser(t, srv, "stored@example.com")

	rec := doJSON(t, srv, http.MethodPost, "/api/tokens", cookie, map[string]string{
		"tokenName": "demo-slot", "token": "demo",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/audit", cookie, map[string]string{
		"auditType": "pipeline-health", "tokenName": "demo-slot",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/api/audit", cookie, map[string]string{
		"auditType": "pipeline-health", "tokenName": "no-such-slot",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	srv, store := newTestServer(t)
	cookie := signupUser(t, srv, "plain@example.com")

	rec := doJSON(t, srv, http.MethodGet, "/api/admin/stats", cookie, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, srv, http.MethodGet, "/api/admin/users", cookie, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminCookie := signupUser(t, srv, "root@example.com")
	_, err := store.DB().Exec(`UPDATE users SET role = 'admin' WHERE email = ?`, "root@example.com")
	require.NoError(t, err)

	rec = doJSON(t, srv, http.MethodGet, "/api/admin/stats", adminCookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		TotalUsers int `json:"totalUsers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalUsers)

	rec = doJSON(t, srv, http.MethodGet, "/api/admin/users", adminCookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "plain@example.com")

	rec = doJSON(t, srv, http.MethodGet, "/v1/logs", adminCookie, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "entries")
}

func TestLogoutClearsCookie(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "auth-token", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
