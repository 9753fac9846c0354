// File path: internal/audit/lead_scoring.go
package audit

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/NicoLafakis/HubAuditor9001/internal/hubspot"
)

const engagementWindow = 30 * 24 * time.Hour

// Score bucket labels, in display order.
const (
	bucketNoScore = "No Score"
	bucketLow     = "Low (1-30)"
	bucketMedium  = "Medium (31-70)"
	bucketHigh    = "High (71-100)"
)

var scoreBucketOrder = []string{bucketNoScore, bucketLow, bucketMedium, bucketHigh}

// LeadScoringMetrics is the fixed result shape of the lead scoring and
// segmentation audit.
type LeadScoringMetrics struct {
	ContactsByLifecycle   map[string]int `json:"contactsByLifecycle"`
	LeadScoreDistribution map[string]int `json:"leadScoreDistribution"`
	AvgTimeToConversion   map[string]int `json:"avgTimeToConversion"`
	SegmentOverlap        int            `json:"segmentOverlap"`
	EngagementRate        float64        `json:"engagementRate"`
}

func (LeadScoringMetrics) AuditType() Type { return TypeLeadScoring }

func (m LeadScoringMetrics) PromptFields() []PromptField {
	return []PromptField{
		{Key: "contactsByLifecycle", Value: m.ContactsByLifecycle},
		{Key: "leadScoreDistribution", Value: m.LeadScoreDistribution},
		{Key: "avgTimeToConversion", Value: m.AvgTimeToConversion},
		{Key: "segmentOverlap", Value: m.SegmentOverlap},
		{Key: "engagementRate", Value: m.EngagementRate},
	}
}

// CalculateLeadScoring aggregates lead scoring metrics. Scores come from
// hs_lead_score with hubspotscore as fallback, first present wins;
// unparseable scores land in the No Score bucket. Conversion time only
// covers contacts whose lifecycle stage is exactly "customer" and which
// carry a create date.
func CalculateLeadScoring(contacts []hubspot.Contact, now time.Time) LeadScoringMetrics {
	total := len(contacts)

	lifecycle := make(map[string]int)
	for _, c := range contacts {
		stage, ok := c.Prop("lifecyclestage")
		if !ok {
			stage = "Unknown"
		}
		lifecycle[stage]++
	}

	scores := map[string]int{
		bucketNoScore: 0,
		bucketLow:     0,
		bucketMedium:  0,
		bucketHigh:    0,
	}
	for _, c := range contacts {
		raw, ok := c.Prop("hs_lead_score")
		if !ok {
			raw, ok = c.Prop("hubspotscore")
		}
		if !ok {
			scores[bucketNoScore]++
			continue
		}
		score, err := strconv.Atoi(raw)
		if err != nil {
			scores[bucketNoScore]++
			continue
		}
		switch {
		case score <= 30:
			scores[bucketLow]++
		case score <= 70:
			scores[bucketMedium]++
		default:
			scores[bucketHigh]++
		}
	}

	var conversionDays []int
	for _, c := range contacts {
		stage, _ := c.Prop("lifecyclestage")
		if stage != "customer" {
			continue
		}
		created, ok := parseTimestamp(mustProp(c, "createdate"))
		if !ok {
			continue
		}
		conversionDays = append(conversionDays, int(c.UpdatedAt.Sub(created).Hours()/24))
	}
	avgConversion := map[string]int{"Average Days": 0}
	if len(conversionDays) > 0 {
		sum := 0
		for _, days := range conversionDays {
			sum += days
		}
		avgConversion["Average Days"] = int(math.Round(float64(sum) / float64(len(conversionDays))))
	}

	engaged := 0
	engagementCutoff := now.Add(-engagementWindow)
	for _, c := range contacts {
		if modified, ok := parseTimestamp(mustProp(c, "lastmodifieddate")); ok && modified.After(engagementCutoff) {
			engaged++
		}
	}

	return LeadScoringMetrics{
		ContactsByLifecycle:   lifecycle,
		LeadScoreDistribution: scores,
		AvgTimeToConversion:   avgConversion,
		SegmentOverlap:        0, // would require list-membership analysis
		EngagementRate:        pct(engaged, total),
	}
}

// FormatLeadScoring converts the metrics into sidebar display groups.
func FormatLeadScoring(m LeadScoringMetrics) []MetricGroup {
	totalContacts := 0
	for _, count := range m.ContactsByLifecycle {
		totalContacts += count
	}

	var scoreCards []MetricCard
	for _, bucket := range scoreBucketOrder {
		count := m.LeadScoreDistribution[bucket]
		card := MetricCard{
			Label:      bucket,
			Value:      count,
			Percentage: pctPtr(pct(count, totalContacts)),
		}
		if bucket == bucketNoScore {
			if pct(count, totalContacts) > 30 {
				card.Severity = SeverityWarning
			}
			card.Description = "Contacts without a lead score. Consider implementing lead scoring to prioritize your best leads."
		}
		scoreCards = append(scoreCards, card)
	}

	var lifecycleCards []MetricCard
	for _, entry := range sortedByCount(m.ContactsByLifecycle) {
		lifecycleCards = append(lifecycleCards, MetricCard{
			Label:       entry.key,
			Value:       entry.count,
			Percentage:  pctPtr(pct(entry.count, totalContacts)),
			Description: fmt.Sprintf("Number of contacts in the %s lifecycle stage.", entry.key),
		})
	}

	avgDays := m.AvgTimeToConversion["Average Days"]
	var avgValue interface{} = "N/A"
	if avgDays > 0 {
		avgValue = avgDays
	}

	return []MetricGroup{
		{Title: "Lead Score Distribution", Metrics: scoreCards},
		{Title: "Lifecycle Stage Distribution", Metrics: lifecycleCards},
		{
			Title: "Engagement & Conversion",
			Metrics: []MetricCard{
				{
					Label:       "Engagement Rate (30 days)",
					Value:       fmt.Sprintf("%.1f%%", m.EngagementRate),
					Severity:    invertedThreshold(m.EngagementRate, 20, 40),
					Description: "Percentage of contacts that have been updated or engaged with in the last 30 days. Low engagement might indicate stale leads or inactive contacts.",
				},
				{
					Label:       "Avg. Days to Convert",
					Value:       avgValue,
					Description: "Average time it takes for a lead to convert to a customer. This helps you understand your sales cycle length and set realistic expectations.",
				},
			},
		},
	}
}
