// File path: internal/audit/lead_scoring_test.go
package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoLafakis/HubAuditor9001/internal/hubspot"
)

func TestCalculateLeadScoringBuckets(t *testing.T) {
	contacts := []hubspot.Contact{
		contactWith("1", map[string]string{"hs_lead_score": "15"}),
		contactWith("2", map[string]string{"hs_lead_score": "45"}),
		contactWith("3", map[string]string{"hs_lead_score": "90"}),
		contactWith("4", map[string]string{"hubspotscore": "70"}), // fallback property
		contactWith("5", map[string]string{"hs_lead_score": "not-a-number"}),
		contactWith("6", map[string]string{}),
	}

	m := CalculateLeadScoring(contacts, testNow)

	assert.Equal(t, map[string]int{
		"No Score":       2,
		"Low (1-30)":     1,
		"Medium (31-70)": 2,
		"High (71-100)":  1,
	}, m.LeadScoreDistribution)
}

func TestCalculateLeadScoringConversionAndEngagement(t *testing.T) {
	created := testNow.Add(-40 * 24 * time.Hour)
	converted := hubspot.Contact{
		ID: "1",
		Properties: map[string]string{
			"lifecyclestage":   "customer",
			"createdate":       created.Format(time.RFC3339),
			"lastmodifieddate": isoDays(3),
		},
		UpdatedAt: created.Add(20 * 24 * time.Hour),
	}
	lead := contactWith("2", map[string]string{
		"lifecyclestage":   "lead",
		"createdate":       isoDays(100),
		"lastmodifieddate": isoDays(60),
	})

	m := CalculateLeadScoring([]hubspot.Contact{converted, lead}, testNow)

	// Only the customer with a create date contributes.
	assert.Equal(t, map[string]int{"Average Days": 20}, m.AvgTimeToConversion)
	// One of two modified inside the 30-day window.
	assert.InDelta(t, 50.0, m.EngagementRate, 0.001)
	assert.Equal(t, map[string]int{"customer": 1, "lead": 1}, m.ContactsByLifecycle)
}

func TestFormatLeadScoringBucketOrder(t *testing.T) {
	m := LeadScoringMetrics{
		ContactsByLifecycle: map[string]int{"lead": 5},
		LeadScoreDistribution: map[string]int{
			"No Score":       4,
			"Low (1-30)":     1,
			"Medium (31-70)": 0,
			"High (71-100)":  0,
		},
		AvgTimeToConversion: map[string]int{"Average Days": 0},
		EngagementRate:      10,
	}

	groups := FormatLeadScoring(m)
	require.NotEmpty(t, groups)

	var scoreGroup *MetricGroup
	for gi := range groups {
		if groups[gi].Title == "Lead Score Distribution" {
			scoreGroup = &groups[gi]
		}
	}
	require.NotNil(t, scoreGroup)
	require.Len(t, scoreGroup.Metrics, 4)
	// Buckets stay in their fixed order regardless of counts.
	assert.Equal(t, "No Score", scoreGroup.Metrics[0].Label)
	assert.Equal(t, "Low (1-30)", scoreGroup.Metrics[1].Label)
	assert.Equal(t, "Medium (31-70)", scoreGroup.Metrics[2].Label)
	assert.Equal(t, "High (71-100)", scoreGroup.Metrics[3].Label)
	// 80% unscored crosses the 30% warning line.
	assert.Equal(t, SeverityWarning, scoreGroup.Metrics[0].Severity)
}
