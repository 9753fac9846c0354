// File path: internal/audit/metrics.go
package audit

import (
	"sort"
	"time"
)

// pct computes subset/total*100, defined as 0 when total is 0. Every
// percentage in this package goes through here so no calculator can divide
// by zero.
func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func pctPtr(v float64) *float64 {
	return &v
}

// parseTimestamp accepts the RFC3339 timestamps the CRM API emits.
func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type distEntry struct {
	key   string
	count int
}

// sortedByCount returns distribution entries ordered descending by count.
// Ties break on key so ordering stays deterministic across runs.
func sortedByCount(dist map[string]int) []distEntry {
	entries := make([]distEntry, 0, len(dist))
	for key, count := range dist {
		entries = append(entries, distEntry{key: key, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	return entries
}

func topN(entries []distEntry, n int) []distEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
