// File path: internal/audit/types.go
package audit

import (
	"context"
	"fmt"

	"github.com/NicoLafakis/HubAuditor9001/internal/hubspot"
)

// Type identifies one of the five audit categories. The set is closed:
// dispatch sites switch over it exhaustively and reject anything else.
type Type string

const (
	TypeContactQuality    Type = "contact-quality"
	TypePipelineHealth    Type = "pipeline-health"
	TypeCompanyEnrichment Type = "company-enrichment"
	TypeLeadScoring       Type = "lead-scoring"
	TypeSyncIntegrity     Type = "sync-integrity"
)

// Types lists every audit type in display order.
var Types = []Type{
	TypeContactQuality,
	TypePipelineHealth,
	TypeCompanyEnrichment,
	TypeLeadScoring,
	TypeSyncIntegrity,
}

// ParseType validates a wire-level audit type tag.
func ParseType(value string) (Type, error) {
	t := Type(value)
	switch t {
	case TypeContactQuality, TypePipelineHealth, TypeCompanyEnrichment, TypeLeadScoring, TypeSyncIntegrity:
		return t, nil
	}
	return "", fmt.Errorf("unknown audit type %q", value)
}

// DisplayName returns the human-readable audit name.
func (t Type) DisplayName() string {
	switch t {
	case TypeContactQuality:
		return "Contact Data Quality"
	case TypePipelineHealth:
		return "Deal Pipeline Health"
	case TypeCompanyEnrichment:
		return "Company Enrichment"
	case TypeLeadScoring:
		return "Lead Scoring & Segmentation"
	case TypeSyncIntegrity:
		return "Sync Integrity"
	}
	return string(t)
}

// Severity is the three-level display emphasis attached to a metric.
type Severity string

const (
	SeverityGood     Severity = "good"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// MetricCard is a single display unit in the metrics sidebar. Value is either
// a number or a pre-formatted string.
type MetricCard struct {
	Label       string      `json:"label"`
	Value       interface{} `json:"value"`
	Percentage  *float64    `json:"percentage,omitempty"`
	Severity    Severity    `json:"severity,omitempty"`
	Description string      `json:"description,omitempty"`
}

// MetricGroup is a named, ordered list of cards. Group titles are stable per
// audit type and rendering order is significant: Overview comes first.
type MetricGroup struct {
	Title   string       `json:"title"`
	Metrics []MetricCard `json:"metrics"`
}

// Metrics is the closed set of per-audit-type result shapes. PromptFields
// exposes every field in declaration order for prompt serialization.
type Metrics interface {
	AuditType() Type
	PromptFields() []PromptField
}

// PromptField is one metrics field for the prompt builder. Value is an int,
// float64, string, or a string-keyed distribution (map[string]int or
// map[string]float64).
type PromptField struct {
	Key   string
	Value interface{}
}

// AccountContext is optional business context attached to an audit request;
// it steers the generated narrative but not the arithmetic.
type AccountContext struct {
	Industry     string `json:"industry,omitempty"`
	CompanyType  string `json:"companyType,omitempty"`
	EstimatedARR string `json:"estimatedARR,omitempty"`
	TeamSize     string `json:"teamSize,omitempty"`
}

// RecordSource supplies the CRM records an audit consumes. The live client
// and the canned demo source both satisfy it.
type RecordSource interface {
	FetchContacts(ctx context.Context) ([]hubspot.Contact, error)
	FetchDeals(ctx context.Context) ([]hubspot.Deal, error)
	FetchCompanies(ctx context.Context) ([]hubspot.Company, error)
}
