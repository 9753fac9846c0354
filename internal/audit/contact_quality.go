// File path: internal/audit/contact_quality.go
package audit

import (
	"fmt"
	"strings"
	"time"

	"github.com/NicoLafakis/HubAuditor9001/internal/hubspot"
)

const staleContactWindow = 90 * 24 * time.Hour

// ContactQualityMetrics is the fixed result shape of the contact data
// quality audit.
type ContactQualityMetrics struct {
	TotalContacts         int            `json:"totalContacts"`
	Duplicates            int            `json:"duplicates"`
	DuplicateRate         float64        `json:"duplicateRate"`
	MissingEmail          int            `json:"missingEmail"`
	MissingEmailPct       float64        `json:"missingEmailPct"`
	MissingPhone          int            `json:"missingPhone"`
	MissingPhonePct       float64        `json:"missingPhonePct"`
	HardBounceRate        float64        `json:"hardBounceRate"`
	UnassignedContacts    int            `json:"unassignedContacts"`
	UnassignedPct         float64        `json:"unassignedPct"`
	StaleContacts         int            `json:"staleContacts"`
	StaleContactsPct      float64        `json:"staleContactsPct"`
	LifecycleDistribution map[string]int `json:"lifecycleDistribution"`
}

func (ContactQualityMetrics) AuditType() Type { return TypeContactQuality }

func (m ContactQualityMetrics) PromptFields() []PromptField {
	return []PromptField{
		{Key: "totalContacts", Value: m.TotalContacts},
		{Key: "duplicates", Value: m.Duplicates},
		{Key: "duplicateRate", Value: m.DuplicateRate},
		{Key: "missingEmail", Value: m.MissingEmail},
		{Key: "missingEmailPct", Value: m.MissingEmailPct},
		{Key: "missingPhone", Value: m.MissingPhone},
		{Key: "missingPhonePct", Value: m.MissingPhonePct},
		{Key: "hardBounceRate", Value: m.HardBounceRate},
		{Key: "unassignedContacts", Value: m.UnassignedContacts},
		{Key: "unassignedPct", Value: m.UnassignedPct},
		{Key: "staleContacts", Value: m.StaleContacts},
		{Key: "staleContactsPct", Value: m.StaleContactsPct},
		{Key: "lifecycleDistribution", Value: m.LifecycleDistribution},
	}
}

// CalculateContactQuality aggregates contact data quality metrics in a single
// pass per metric. A group of n case-folded duplicate emails contributes n-1
// duplicates; contacts without a last-modified timestamp count as stale.
func CalculateContactQuality(contacts []hubspot.Contact, now time.Time) ContactQualityMetrics {
	total := len(contacts)

	emailCounts := make(map[string]int)
	for _, c := range contacts {
		if email, ok := c.Prop("email"); ok {
			emailCounts[strings.ToLower(email)]++
		}
	}
	duplicates := 0
	for _, count := range emailCounts {
		if count > 1 {
			duplicates += count - 1
		}
	}

	var missingEmail, missingPhone, hardBounces, unassigned, stale int
	staleCutoff := now.Add(-staleContactWindow)
	for _, c := range contacts {
		if _, ok := c.Prop("email"); !ok {
			missingEmail++
		}
		if _, ok := c.Prop("phone"); !ok {
			missingPhone++
		}
		if bounce, ok := c.Prop("hs_email_bounce"); ok && bounce == "true" {
			hardBounces++
		}
		if _, ok := c.Prop("hubspot_owner_id"); !ok {
			unassigned++
		}
		modified, ok := parseTimestamp(mustProp(c, "lastmodifieddate"))
		if !ok || modified.Before(staleCutoff) {
			stale++
		}
	}

	lifecycle := make(map[string]int)
	for _, c := range contacts {
		stage, ok := c.Prop("lifecyclestage")
		if !ok {
			stage = "Unknown"
		}
		lifecycle[stage]++
	}

	return ContactQualityMetrics{
		TotalContacts:         total,
		Duplicates:            duplicates,
		DuplicateRate:         pct(duplicates, total),
		MissingEmail:          missingEmail,
		MissingEmailPct:       pct(missingEmail, total),
		MissingPhone:          missingPhone,
		MissingPhonePct:       pct(missingPhone, total),
		HardBounceRate:        pct(hardBounces, total),
		UnassignedContacts:    unassigned,
		UnassignedPct:         pct(unassigned, total),
		StaleContacts:         stale,
		StaleContactsPct:      pct(stale, total),
		LifecycleDistribution: lifecycle,
	}
}

func mustProp(c hubspot.Contact, key string) string {
	value, _ := c.Prop(key)
	return value
}

// FormatContactQuality converts the metrics into sidebar display groups.
// Severity cutoffs are domain policy constants, not derived.
func FormatContactQuality(m ContactQualityMetrics) []MetricGroup {
	groups := []MetricGroup{
		{
			Title: "Overview",
			Metrics: []MetricCard{
				{Label: "Total Contacts", Value: m.TotalContacts, Severity: SeverityGood},
			},
		},
		{
			Title: "Data Quality Issues",
			Metrics: []MetricCard{
				{
					Label:      "Duplicate Contacts",
					Value:      m.Duplicates,
					Percentage: pctPtr(m.DuplicateRate),
					Severity:   threshold(m.DuplicateRate, 5, 2),
				},
				{
					Label:      "Missing Email",
					Value:      m.MissingEmail,
					Percentage: pctPtr(m.MissingEmailPct),
					Severity:   threshold(m.MissingEmailPct, 20, 10),
				},
				{
					Label:      "Missing Phone",
					Value:      m.MissingPhone,
					Percentage: pctPtr(m.MissingPhonePct),
					Severity:   warnAbove(m.MissingPhonePct, 30),
				},
				{
					Label:    "Hard Bounce Rate",
					Value:    fmt.Sprintf("%.1f%%", m.HardBounceRate),
					Severity: threshold(m.HardBounceRate, 5, 2),
				},
			},
		},
		{
			Title: "Contact Management",
			Metrics: []MetricCard{
				{
					Label:      "Unassigned Contacts",
					Value:      m.UnassignedContacts,
					Percentage: pctPtr(m.UnassignedPct),
					Severity:   warnAbove(m.UnassignedPct, 15),
				},
				{
					Label:      "Stale Contacts (90+ days)",
					Value:      m.StaleContacts,
					Percentage: pctPtr(m.StaleContactsPct),
					Severity:   warnAbove(m.StaleContactsPct, 30),
				},
			},
		},
	}

	var lifecycleCards []MetricCard
	for _, entry := range topN(sortedByCount(m.LifecycleDistribution), 5) {
		lifecycleCards = append(lifecycleCards, MetricCard{
			Label:      entry.key,
			Value:      entry.count,
			Percentage: pctPtr(pct(entry.count, m.TotalContacts)),
		})
	}
	groups = append(groups, MetricGroup{Title: "Lifecycle Distribution", Metrics: lifecycleCards})
	return groups
}

// threshold maps a rate to critical above the first cutoff, warning above the
// second, good otherwise.
func threshold(rate, critical, warning float64) Severity {
	switch {
	case rate > critical:
		return SeverityCritical
	case rate > warning:
		return SeverityWarning
	default:
		return SeverityGood
	}
}

// invertedThreshold is for metrics where lower is worse (scores, coverage).
func invertedThreshold(rate, critical, warning float64) Severity {
	switch {
	case rate < critical:
		return SeverityCritical
	case rate < warning:
		return SeverityWarning
	default:
		return SeverityGood
	}
}

func warnAbove(rate, warning float64) Severity {
	if rate > warning {
		return SeverityWarning
	}
	return SeverityGood
}
