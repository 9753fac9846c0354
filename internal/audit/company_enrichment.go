// File path: internal/audit/company_enrichment.go
package audit

import (
	"fmt"

	"github.com/NicoLafakis/HubAuditor9001/internal/hubspot"
)

// companyKeyFields are the five fields the enrichment score averages over.
var companyKeyFields = []string{"name", "domain", "industry", "annualrevenue", "numberofemployees"}

// CompanyEnrichmentMetrics is the fixed result shape of the company
// enrichment audit.
type CompanyEnrichmentMetrics struct {
	TotalCompanies         int     `json:"totalCompanies"`
	MissingIndustry        int     `json:"missingIndustry"`
	MissingIndustryPct     float64 `json:"missingIndustryPct"`
	MissingRevenue         int     `json:"missingRevenue"`
	MissingRevenuePct      float64 `json:"missingRevenuePct"`
	CompanyContactCoverage float64 `json:"companyContactCoverage"`
	EnrichmentScore        float64 `json:"enrichmentScore"`
}

func (CompanyEnrichmentMetrics) AuditType() Type { return TypeCompanyEnrichment }

func (m CompanyEnrichmentMetrics) PromptFields() []PromptField {
	return []PromptField{
		{Key: "totalCompanies", Value: m.TotalCompanies},
		{Key: "missingIndustry", Value: m.MissingIndustry},
		{Key: "missingIndustryPct", Value: m.MissingIndustryPct},
		{Key: "missingRevenue", Value: m.MissingRevenue},
		{Key: "missingRevenuePct", Value: m.MissingRevenuePct},
		{Key: "companyContactCoverage", Value: m.CompanyContactCoverage},
		{Key: "enrichmentScore", Value: m.EnrichmentScore},
	}
}

// CalculateCompanyEnrichment aggregates company data completeness metrics.
// Contact coverage needs the auxiliary contact list; without one it reports 0.
func CalculateCompanyEnrichment(companies []hubspot.Company, contacts []hubspot.Contact) CompanyEnrichmentMetrics {
	total := len(companies)

	var missingIndustry, missingRevenue int
	for _, c := range companies {
		if _, ok := c.Prop("industry"); !ok {
			missingIndustry++
		}
		if _, ok := c.Prop("annualrevenue"); !ok {
			missingRevenue++
		}
	}

	coverage := 0.0
	if len(contacts) > 0 {
		associated := make(map[string]struct{})
		for _, contact := range contacts {
			if id, ok := contact.Prop("associatedcompanyid"); ok {
				associated[id] = struct{}{}
			}
		}
		coverage = pct(len(associated), total)
	}

	score := 0.0
	if total > 0 {
		sum := 0.0
		for _, c := range companies {
			filled := 0
			for _, field := range companyKeyFields {
				if _, ok := c.Prop(field); ok {
					filled++
				}
			}
			sum += float64(filled) / float64(len(companyKeyFields)) * 100
		}
		score = sum / float64(total)
	}

	return CompanyEnrichmentMetrics{
		TotalCompanies:         total,
		MissingIndustry:        missingIndustry,
		MissingIndustryPct:     pct(missingIndustry, total),
		MissingRevenue:         missingRevenue,
		MissingRevenuePct:      pct(missingRevenue, total),
		CompanyContactCoverage: coverage,
		EnrichmentScore:        score,
	}
}

// FormatCompanyEnrichment converts the metrics into sidebar display groups.
// Coverage and score use inverted cutoffs: lower is worse.
func FormatCompanyEnrichment(m CompanyEnrichmentMetrics) []MetricGroup {
	return []MetricGroup{
		{
			Title: "Overview",
			Metrics: []MetricCard{
				{
					Label:       "Total Companies",
					Value:       m.TotalCompanies,
					Severity:    SeverityGood,
					Description: "The total number of companies in your HubSpot database.",
				},
				{
					Label:       "Overall Enrichment Score",
					Value:       fmt.Sprintf("%.1f%%", m.EnrichmentScore),
					Severity:    invertedThreshold(m.EnrichmentScore, 50, 70),
					Description: "Average completeness of key company fields (name, domain, industry, revenue, employee count). Higher scores mean richer company data.",
				},
			},
		},
		{
			Title: "Missing Data",
			Metrics: []MetricCard{
				{
					Label:       "Missing Industry",
					Value:       m.MissingIndustry,
					Percentage:  pctPtr(m.MissingIndustryPct),
					Severity:    threshold(m.MissingIndustryPct, 40, 20),
					Description: "Companies without an industry classification. Industry data helps you segment your accounts and personalize your outreach.",
				},
				{
					Label:       "Missing Revenue",
					Value:       m.MissingRevenue,
					Percentage:  pctPtr(m.MissingRevenuePct),
					Severity:    threshold(m.MissingRevenuePct, 50, 30),
					Description: "Companies without revenue data. This information is crucial for prioritizing high-value accounts and qualifying leads.",
				},
			},
		},
		{
			Title: "Relationship Coverage",
			Metrics: []MetricCard{
				{
					Label:       "Companies with Contacts",
					Value:       fmt.Sprintf("%.1f%%", m.CompanyContactCoverage),
					Severity:    invertedThreshold(m.CompanyContactCoverage, 60, 80),
					Description: "Percentage of companies that have at least one associated contact. Companies without contacts represent missed relationship opportunities.",
				},
			},
		},
	}
}
