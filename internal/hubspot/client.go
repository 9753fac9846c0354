// File path: internal/hubspot/client.go
package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/NicoLafakis/HubAuditor9001/internal/common"
)

const (
	defaultBaseURL   = "https://api.hubapi.com"
	defaultPageLimit = 100
	defaultRPS       = 10
)

// Typed failures surfaced from the CRM API. Callers match with errors.Is.
var (
	ErrInvalidToken = errors.New("hubspot: invalid or expired access token")
	ErrForbidden    = errors.New("hubspot: access forbidden for this token")
	ErrRateLimited  = errors.New("hubspot: rate limit exceeded")
)

// Config tunes the CRM client. The zero value gets sensible defaults.
type Config struct {
	BaseURL        string
	RequestsPerSec float64
	PageLimit      int
}

// Client is a bearer-token HTTP client for the HubSpot CRM v3 objects API.
// Requests are throttled through a shared rate limiter; list endpoints follow
// the cursor (`after`) pagination token until exhausted.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	pageLimit  int
}

// NewClient builds a Client around the provided access token.
func NewClient(token string, cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = defaultRPS
	}
	limit := cfg.PageLimit
	if limit <= 0 || limit > defaultPageLimit {
		limit = defaultPageLimit
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    base,
		token:      token,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		pageLimit:  limit,
	}
}

// FetchContacts returns every contact, paging until the cursor is exhausted.
// A nil properties slice requests the default audit property set.
func (c *Client) FetchContacts(ctx context.Context) ([]Contact, error) {
	records, err := c.fetchPaginated(ctx, "/crm/v3/objects/contacts", DefaultContactProperties)
	if err != nil {
		return nil, err
	}
	contacts := make([]Contact, len(records))
	for i, rec := range records {
		contacts[i] = Contact(rec)
	}
	return contacts, nil
}

// FetchDeals returns every deal.
func (c *Client) FetchDeals(ctx context.Context) ([]Deal, error) {
	records, err := c.fetchPaginated(ctx, "/crm/v3/objects/deals", DefaultDealProperties)
	if err != nil {
		return nil, err
	}
	deals := make([]Deal, len(records))
	for i, rec := range records {
		deals[i] = Deal(rec)
	}
	return deals, nil
}

// FetchCompanies returns every company.
func (c *Client) FetchCompanies(ctx context.Context) ([]Company, error) {
	records, err := c.fetchPaginated(ctx, "/crm/v3/objects/companies", DefaultCompanyProperties)
	if err != nil {
		return nil, err
	}
	companies := make([]Company, len(records))
	for i, rec := range records {
		companies[i] = Company(rec)
	}
	return companies, nil
}

// TestConnection probes the API with a single-record fetch.
func (c *Client) TestConnection(ctx context.Context) bool {
	query := url.Values{}
	query.Set("limit", "1")
	var page recordPage
	if err := c.get(ctx, "/crm/v3/objects/contacts", query, &page); err != nil {
		common.Logger().Warn("hubspot: connection probe failed", "error", err)
		return false
	}
	return true
}

type record struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

type recordPage struct {
	Results []record `json:"results"`
	Paging  *struct {
		Next *struct {
			After string `json:"after"`
		} `json:"next"`
	} `json:"paging"`
}

func (c *Client) fetchPaginated(ctx context.Context, endpoint string, properties []string) ([]record, error) {
	var results []record
	after := ""
	for {
		query := url.Values{}
		query.Set("limit", fmt.Sprintf("%d", c.pageLimit))
		query.Set("properties", strings.Join(properties, ","))
		if after != "" {
			query.Set("after", after)
		}
		var page recordPage
		if err := c.get(ctx, endpoint, query, &page); err != nil {
			return nil, err
		}
		results = append(results, page.Results...)
		if page.Paging == nil || page.Paging.Next == nil || page.Paging.Next.After == "" {
			break
		}
		after = page.Paging.Next.After
	}
	common.Logger().Debug("hubspot: fetch complete", "endpoint", endpoint, "records", len(results))
	return results, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hubspot request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read hubspot response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode hubspot response: %w", err)
	}
	return nil
}

func classifyStatus(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrInvalidToken
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("hubspot api error (%d): %s", status, payload.Message)
	}
	return fmt.Errorf("hubspot api error (%d)", status)
}
