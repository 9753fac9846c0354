// File path: internal/hubspot/types.go
package hubspot

import (
	"strings"
	"time"
)

// Contact is a CRM contact record. Properties is an open-ended map of named
// string fields; a missing key means the value is unknown, which is not the
// same as an empty string — callers should use Prop for presence checks.
type Contact struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Deal is a CRM deal record.
type Deal struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Company is a CRM company record.
type Company struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Prop returns the named property and whether it is present. Absent keys and
// blank values both report false.
func (c Contact) Prop(key string) (string, bool) { return prop(c.Properties, key) }

// Prop returns the named property and whether it is present.
func (d Deal) Prop(key string) (string, bool) { return prop(d.Properties, key) }

// Prop returns the named property and whether it is present.
func (c Company) Prop(key string) (string, bool) { return prop(c.Properties, key) }

func prop(props map[string]string, key string) (string, bool) {
	if props == nil {
		return "", false
	}
	value, ok := props[key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// Default property sets requested from the CRM API, matching what the audit
// calculators read.
var (
	DefaultContactProperties = []string{
		"email",
		"phone",
		"firstname",
		"lastname",
		"lifecyclestage",
		"hs_email_bounce",
		"hubspot_owner_id",
		"lastmodifieddate",
		"createdate",
		"hs_lead_score",
		"hubspotscore",
		"associatedcompanyid",
	}
	DefaultDealProperties = []string{
		"dealname",
		"amount",
		"closedate",
		"dealstage",
		"pipeline",
		"createdate",
		"hs_lastmodifieddate",
	}
	DefaultCompanyProperties = []string{
		"name",
		"domain",
		"industry",
		"annualrevenue",
		"numberofemployees",
	}
)
