// File path: internal/report/sections.go
package report

import "strings"

// Section is one titled block of the generated analysis. HTML is populated by
// Render; Consolidate leaves it empty.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	HTML  string `json:"html,omitempty"`
}

// Canonical section titles, in display order. Generated headings vary in
// wording between requests; mergeTitle folds them into this fixed set so the
// navigation structure stays stable.
var canonicalOrder = []string{
	"Overview",
	"Business Impact",
	"Recommendations",
	"Benchmark",
	"Grade",
	"Success Metrics",
}

// mergeRules are ordered lowercase substring checks against a raw section
// title; the first hit wins. Deliberately dumb: the upstream text is not
// controlled, and stability beats cleverness here.
var mergeRules = []struct {
	substr    string
	canonical string
}{
	{"overview", "Overview"},
	{"key finding", "Overview"},
	{"finding", "Overview"},
	{"summary", "Overview"},
	{"business impact", "Business Impact"},
	{"impact", "Business Impact"},
	{"recommendation", "Recommendations"},
	{"action item", "Recommendations"},
	{"next step", "Recommendations"},
	{"benchmark", "Benchmark"},
	{"industry standard", "Benchmark"},
	{"grade", "Grade"},
	{"rating", "Grade"},
	{"success metric", "Success Metrics"},
	{"kpi", "Success Metrics"},
}

// Consolidate parses generated analysis text into an ordered, non-empty list
// of sections. A `## Title` line or a standalone `**Title**` line opens a
// section; content before any heading becomes an implicit Overview. A second
// pass merges recognized titles into the canonical set; unrecognized titles
// are appended afterward in first-seen order.
func Consolidate(raw string) []Section {
	parsed := splitSections(raw)

	merged := make(map[string][]string)
	var extraOrder []string

	for _, s := range parsed {
		title := mergeTitle(s.Title)
		if title == "" {
			title = s.Title
			if _, seen := merged[title]; !seen && !isCanonical(title) {
				extraOrder = append(extraOrder, title)
			}
		}
		merged[title] = append(merged[title], s.Body)
	}

	var out []Section
	for _, title := range canonicalOrder {
		if bodies, ok := merged[title]; ok {
			out = append(out, Section{Title: title, Body: strings.Join(bodies, "\n\n")})
		}
	}
	for _, title := range extraOrder {
		out = append(out, Section{Title: title, Body: strings.Join(merged[title], "\n\n")})
	}
	return out
}

// splitSections is the single-pass line scanner. Empty sections (a heading
// immediately followed by another heading) are dropped.
func splitSections(raw string) []Section {
	var sections []Section
	var current *Section
	var buf []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(buf, "\n"))
		if current.Body != "" {
			sections = append(sections, *current)
		}
		buf = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if title, ok := headingTitle(line); ok {
			flush()
			current = &Section{Title: title}
			continue
		}
		if current == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			current = &Section{Title: "Overview"}
		}
		buf = append(buf, line)
	}
	flush()
	return sections
}

// headingTitle reports whether a line opens a section: either a level-2
// markdown heading or a line that is nothing but a bold span.
func headingTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "## ") && !strings.HasPrefix(trimmed, "###") {
		title := strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
		title = strings.ReplaceAll(title, "**", "")
		if title != "" {
			return title, true
		}
		return "", false
	}
	if strings.HasPrefix(trimmed, "**") && strings.HasSuffix(trimmed, "**") && len(trimmed) > 4 {
		inner := trimmed[2 : len(trimmed)-2]
		if !strings.Contains(inner, "**") {
			return strings.TrimSpace(inner), true
		}
	}
	return "", false
}

func mergeTitle(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range mergeRules {
		if strings.Contains(lower, rule.substr) {
			return rule.canonical
		}
	}
	return ""
}

func isCanonical(title string) bool {
	for _, c := range canonicalOrder {
		if c == title {
			return true
		}
	}
	return false
}
