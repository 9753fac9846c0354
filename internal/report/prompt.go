// File path: internal/report/prompt.go
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NicoLafakis/HubAuditor9001/internal/audit"
)

// BuildPrompt serializes an audit's metrics and optional account context into
// the instruction string sent to the generation provider. The requested output
// format (level-2 headings) is what Consolidate expects back.
func BuildPrompt(auditType audit.Type, metrics audit.Metrics, acct *audit.AccountContext) string {
	var b strings.Builder

	b.WriteString("You are a HubSpot CRM expert auditing a company's CRM data.\n")

	if acct != nil {
		b.WriteString("\nACCOUNT CONTEXT:\n")
		b.WriteString("- Industry: " + orNotSpecified(acct.Industry) + "\n")
		b.WriteString("- Company Type: " + orNotSpecified(acct.CompanyType) + "\n")
		b.WriteString("- Estimated ARR: " + orNotSpecified(acct.EstimatedARR) + "\n")
		b.WriteString("- Team Size: " + orNotSpecified(acct.TeamSize) + "\n")
	}

	b.WriteString("\nAUDIT TYPE: " + auditType.DisplayName() + "\n")
	b.WriteString("\nQUANTITATIVE METRICS:\n")
	b.WriteString(formatMetrics(metrics))

	b.WriteString("\n\nBased on these metrics")
	if acct != nil {
		b.WriteString(fmt.Sprintf(" for a %s %s business", acct.Industry, acct.CompanyType))
	}
	b.WriteString(":\n\n")

	industry := "industry"
	if acct != nil && acct.Industry != "" {
		industry = acct.Industry
	}
	b.WriteString("1. **Assess Data Health**: Evaluate whether the current state is good, concerning, or critical\n")
	b.WriteString("2. **Identify Root Causes**: Explain the likely reasons for key issues\n")
	b.WriteString("3. **Quantify Business Impact**: Estimate the real-world cost or impact of these issues (e.g., lost revenue, wasted effort)\n")
	b.WriteString("4. **Provide Actionable Recommendations**: Give 3-5 specific, prioritized steps to improve, ordered by ROI\n")
	b.WriteString("5. **Benchmark Against Industry**: Compare to typical " + industry + " standards if applicable\n")

	b.WriteString("\nRespond in structured markdown with clear sections:\n")
	b.WriteString("- **Overview** (2-3 sentences summarizing overall health)\n")
	b.WriteString("- **Key Findings** (bullet points of critical issues)\n")
	b.WriteString("- **Business Impact** (quantified costs/risks)\n")
	b.WriteString("- **Recommendations** (numbered list of actionable steps)\n")

	b.WriteString("\nBe specific, data-driven, and actionable. Avoid generic advice.")

	return b.String()
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

// formatMetrics renders every metrics field as a labeled line; distribution
// fields become an indented sub-list sorted by descending count.
func formatMetrics(metrics audit.Metrics) string {
	var lines []string
	for _, field := range metrics.PromptFields() {
		label := formatLabel(field.Key)
		switch v := field.Value.(type) {
		case map[string]int:
			lines = append(lines, "\n"+label+":")
			for _, entry := range sortedEntries(v) {
				lines = append(lines, fmt.Sprintf("  - %s: %d", formatLabel(entry.key), entry.count))
			}
		case map[string]float64:
			lines = append(lines, "\n"+label+":")
			for _, entry := range sortedFloatEntries(v) {
				lines = append(lines, fmt.Sprintf("  - %s: %v", formatLabel(entry.key), entry.value))
			}
		default:
			lines = append(lines, fmt.Sprintf("- %s: %v", label, v))
		}
	}
	return strings.Join(lines, "\n")
}

// formatLabel converts a camelCase field key into a spaced Title Case label:
// "missingEmailPct" becomes "Missing Email %", "avgDealAge" becomes
// "Average Deal Age".
func formatLabel(key string) string {
	var b strings.Builder
	for i, r := range key {
		if r >= 'A' && r <= 'Z' && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	label := b.String()
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	if strings.HasSuffix(label, "Pct") {
		label = strings.TrimSuffix(label, "Pct") + "%"
	}
	label = strings.ReplaceAll(label, "Avg", "Average")
	return strings.TrimSpace(label)
}

type countEntry struct {
	key   string
	count int
}

func sortedEntries(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, countEntry{key: k, count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	return entries
}

type floatEntry struct {
	key   string
	value float64
}

func sortedFloatEntries(m map[string]float64) []floatEntry {
	entries := make([]floatEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, floatEntry{key: k, value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].key < entries[j].key
	})
	return entries
}
