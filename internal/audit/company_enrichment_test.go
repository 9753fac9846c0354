// File path: internal/audit/company_enrichment_test.go
package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NicoLafakis/HubAuditor9001/internal/hubspot"
)

func companyWith(id string, props map[string]string) hubspot.Company {
	return hubspot.Company{ID: id, Properties: props}
}

func TestCalculateCompanyEnrichment(t *testing.T) {
	companies := []hubspot.Company{
		companyWith("10", map[string]string{
			"name":              "Acme",
			"domain":            "acme.com",
			"industry":          "Software",
			"annualrevenue":     "5000000",
			"numberofemployees": "50",
		}),
		companyWith("11", map[string]string{
			"name": "Globex",
		}),
	}
	contacts := []hubspot.Contact{
		contactWith("1", map[string]string{"associatedcompanyid": "10"}),
		contactWith("2", map[string]string{"associatedcompanyid": "10"}),
		contactWith("3", map[string]string{}),
	}

	m := CalculateCompanyEnrichment(companies, contacts)

	assert.Equal(t, 2, m.TotalCompanies)
	assert.Equal(t, 1, m.MissingIndustry)
	assert.InDelta(t, 50.0, m.MissingIndustryPct, 0.001)
	assert.Equal(t, 1, m.MissingRevenue)
	// One of two companies has an associated contact.
	assert.InDelta(t, 50.0, m.CompanyContactCoverage, 0.001)
	// (100 + 20) / 2 companies.
	assert.InDelta(t, 60.0, m.EnrichmentScore, 0.001)
}

func TestCompanyEnrichmentNoContactList(t *testing.T) {
	companies := []hubspot.Company{
		companyWith("10", map[string]string{"name": "Acme"}),
	}
	m := CalculateCompanyEnrichment(companies, nil)
	assert.Zero(t, m.CompanyContactCoverage)
}

func TestFormatCompanyEnrichmentInvertedThresholds(t *testing.T) {
	m := CompanyEnrichmentMetrics{
		TotalCompanies:         10,
		CompanyContactCoverage: 55, // below 60 is critical
		EnrichmentScore:        65, // between 50 and 70 is warning
	}
	groups := FormatCompanyEnrichment(m)

	var coverage, score *MetricCard
	for gi := range groups {
		for mi := range groups[gi].Metrics {
			card := &groups[gi].Metrics[mi]
			switch card.Label {
			case "Companies with Contacts":
				coverage = card
			case "Overall Enrichment Score":
				score = card
			}
		}
	}
	if assert.NotNil(t, coverage) {
		assert.Equal(t, SeverityCritical, coverage.Severity)
	}
	if assert.NotNil(t, score) {
		assert.Equal(t, SeverityWarning, score.Severity)
	}
}
