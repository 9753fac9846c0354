// File path: internal/audit/pipeline_health.go
package audit

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/NicoLafakis/HubAuditor9001/internal/hubspot"
)

const stuckDealWindow = 30 * 24 * time.Hour

// PipelineHealthMetrics is the fixed result shape of the deal pipeline
// health audit.
type PipelineHealthMetrics struct {
	TotalDeals         int            `json:"totalDeals"`
	DealsByStage       map[string]int `json:"dealsByStage"`
	AvgDealAgeByStage  map[string]int `json:"avgDealAgeByStage"`
	StuckDeals         int            `json:"stuckDeals"`
	StuckDealsPct      float64        `json:"stuckDealsPct"`
	MissingCloseDate   int            `json:"missingCloseDate"`
	MissingCloseDatePct float64       `json:"missingCloseDatePct"`
	MissingAmount      int            `json:"missingAmount"`
	MissingAmountPct   float64        `json:"missingAmountPct"`
	TotalPipelineValue float64        `json:"totalPipelineValue"`
}

func (PipelineHealthMetrics) AuditType() Type { return TypePipelineHealth }

func (m PipelineHealthMetrics) PromptFields() []PromptField {
	return []PromptField{
		{Key: "totalDeals", Value: m.TotalDeals},
		{Key: "dealsByStage", Value: m.DealsByStage},
		{Key: "avgDealAgeByStage", Value: m.AvgDealAgeByStage},
		{Key: "stuckDeals", Value: m.StuckDeals},
		{Key: "stuckDealsPct", Value: m.StuckDealsPct},
		{Key: "missingCloseDate", Value: m.MissingCloseDate},
		{Key: "missingCloseDatePct", Value: m.MissingCloseDatePct},
		{Key: "missingAmount", Value: m.MissingAmount},
		{Key: "missingAmountPct", Value: m.MissingAmountPct},
		{Key: "totalPipelineValue", Value: m.TotalPipelineValue},
	}
}

// CalculatePipelineHealth aggregates deal pipeline metrics. Stage average
// ages only cover deals that carry a create date; stages with no dated deals
// are omitted from the average map. Non-numeric amounts contribute zero to
// the pipeline value but still count as present for the missing-amount rate.
func CalculatePipelineHealth(deals []hubspot.Deal, now time.Time) PipelineHealthMetrics {
	total := len(deals)

	byStage := make(map[string]int)
	agesByStage := make(map[string][]int)
	for _, d := range deals {
		stage, ok := d.Prop("dealstage")
		if !ok {
			stage = "Unknown"
		}
		byStage[stage]++
		if created, ok := parseTimestamp(propOf(d, "createdate")); ok {
			ageDays := int(now.Sub(created).Hours() / 24)
			agesByStage[stage] = append(agesByStage[stage], ageDays)
		}
	}
	avgAgeByStage := make(map[string]int)
	for stage, ages := range agesByStage {
		sum := 0
		for _, age := range ages {
			sum += age
		}
		avgAgeByStage[stage] = int(math.Round(float64(sum) / float64(len(ages))))
	}

	var stuck, missingClose, missingAmount int
	var pipelineValue float64
	stuckCutoff := now.Add(-stuckDealWindow)
	for _, d := range deals {
		modified, ok := parseTimestamp(propOf(d, "hs_lastmodifieddate"))
		if !ok || modified.Before(stuckCutoff) {
			stuck++
		}
		if _, ok := d.Prop("closedate"); !ok {
			missingClose++
		}
		amount, ok := d.Prop("amount")
		if !ok {
			missingAmount++
			continue
		}
		if parsed, err := strconv.ParseFloat(amount, 64); err == nil {
			pipelineValue += parsed
		}
	}

	return PipelineHealthMetrics{
		TotalDeals:          total,
		DealsByStage:        byStage,
		AvgDealAgeByStage:   avgAgeByStage,
		StuckDeals:          stuck,
		StuckDealsPct:       pct(stuck, total),
		MissingCloseDate:    missingClose,
		MissingCloseDatePct: pct(missingClose, total),
		MissingAmount:       missingAmount,
		MissingAmountPct:    pct(missingAmount, total),
		TotalPipelineValue:  pipelineValue,
	}
}

func propOf(d hubspot.Deal, key string) string {
	value, _ := d.Prop(key)
	return value
}

// FormatPipelineHealth converts the metrics into sidebar display groups.
func FormatPipelineHealth(m PipelineHealthMetrics) []MetricGroup {
	groups := []MetricGroup{
		{
			Title: "Overview",
			Metrics: []MetricCard{
				{
					Label:       "Total Deals",
					Value:       m.TotalDeals,
					Severity:    SeverityGood,
					Description: "The total number of deals currently in your sales pipeline.",
				},
				{
					Label:       "Total Pipeline Value",
					Value:       fmt.Sprintf("$%.1fK", m.TotalPipelineValue/1000),
					Severity:    SeverityGood,
					Description: "The combined dollar value of all deals in your pipeline. This shows your potential revenue if all deals close.",
				},
			},
		},
		{
			Title: "Pipeline Issues",
			Metrics: []MetricCard{
				{
					Label:       "Stuck Deals (30+ days)",
					Value:       m.StuckDeals,
					Percentage:  pctPtr(m.StuckDealsPct),
					Severity:    threshold(m.StuckDealsPct, 30, 15),
					Description: "Deals that haven't been updated in over a month. These might be stalled or abandoned and need attention from your sales team.",
				},
				{
					Label:       "Missing Close Date",
					Value:       m.MissingCloseDate,
					Percentage:  pctPtr(m.MissingCloseDatePct),
					Severity:    threshold(m.MissingCloseDatePct, 20, 10),
					Description: "Deals without an expected close date. This makes it hard to forecast revenue and plan your sales pipeline.",
				},
				{
					Label:       "Missing Amount",
					Value:       m.MissingAmount,
					Percentage:  pctPtr(m.MissingAmountPct),
					Severity:    threshold(m.MissingAmountPct, 25, 10),
					Description: "Deals without a dollar value. You can't accurately forecast revenue without knowing how much each deal is worth.",
				},
			},
		},
	}

	var stageCards []MetricCard
	for _, entry := range sortedByCount(m.DealsByStage) {
		stageCards = append(stageCards, MetricCard{
			Label:      entry.key,
			Value:      entry.count,
			Percentage: pctPtr(pct(entry.count, m.TotalDeals)),
		})
	}
	groups = append(groups, MetricGroup{Title: "Deals by Stage", Metrics: stageCards})

	var ageCards []MetricCard
	for _, entry := range topN(sortedByCount(m.AvgDealAgeByStage), 5) {
		severity := SeverityGood
		if entry.count > 90 {
			severity = SeverityWarning
		}
		ageCards = append(ageCards, MetricCard{
			Label:    entry.key,
			Value:    fmt.Sprintf("%d days", entry.count),
			Severity: severity,
		})
	}
	groups = append(groups, MetricGroup{Title: "Average Deal Age by Stage", Metrics: ageCards})
	return groups
}
