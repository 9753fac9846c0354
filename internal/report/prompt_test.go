// File path: internal/report/prompt_test.go
package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NicoLafakis/HubAuditor9001/internal/audit"
)

func TestFormatLabel(t *testing.T) {
	cases := map[string]string{
		"totalContacts":     "Total Contacts",
		"missingEmailPct":   "Missing Email %",
		"duplicateRate":     "Duplicate Rate",
		"avgDealAgeByStage": "Average Deal Age By Stage",
		"email":             "Email",
	}
	for key, want := range cases {
		assert.Equal(t, want, formatLabel(key), "key %q", key)
	}
}

func TestBuildPromptContents(t *testing.T) {
	metrics := audit.ContactQualityMetrics{
		TotalContacts:   200,
		Duplicates:      10,
		DuplicateRate:   5,
		MissingEmailPct: 12.5,
		LifecycleDistribution: map[string]int{
			"lead":     150,
			"customer": 50,
		},
	}
	acct := &audit.AccountContext{
		Industry:    "SaaS",
		CompanyType: "B2B",
	}

	prompt := BuildPrompt(audit.TypeContactQuality, metrics, acct)

	assert.Contains(t, prompt, "AUDIT TYPE: Contact Data Quality")
	assert.Contains(t, prompt, "- Industry: SaaS")
	assert.Contains(t, prompt, "- Estimated ARR: Not specified")
	assert.Contains(t, prompt, "- Total Contacts: 200")
	assert.Contains(t, prompt, "- Missing Email %: 12.5")

	// Distributions render as indented sub-lists, largest first.
	assert.Contains(t, prompt, "Lifecycle Distribution:")
	assert.Contains(t, prompt, "  - Lead: 150")
	assert.Less(t, strings.Index(prompt, "  - Lead: 150"), strings.Index(prompt, "  - Customer: 50"))

	// The instruction block requests the headings Consolidate understands.
	assert.Contains(t, prompt, "**Overview**")
	assert.Contains(t, prompt, "**Key Findings**")
	assert.Contains(t, prompt, "**Business Impact**")
	assert.Contains(t, prompt, "**Recommendations**")
	assert.Contains(t, prompt, "typical SaaS standards")
}

func TestBuildPromptWithoutContext(t *testing.T) {
	prompt := BuildPrompt(audit.TypeSyncIntegrity, audit.CalculateSyncIntegrity(nil), nil)
	assert.NotContains(t, prompt, "ACCOUNT CONTEXT")
	assert.Contains(t, prompt, "AUDIT TYPE: Sync Integrity")
	assert.Contains(t, prompt, "typical industry standards")
	assert.Contains(t, prompt, "- Last Successful Sync: Unknown")
}
