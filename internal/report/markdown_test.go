// File path: internal/report/markdown_test.go
package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSanitizesScriptPayloads(t *testing.T) {
	body := "Before.\n\n<script>alert('xss')</script>\n\nAfter."
	html := Render(body)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "alert('xss')")
	assert.Contains(t, html, "Before.")
	assert.Contains(t, html, "After.")
}

func TestRenderInlineEventHandlersStripped(t *testing.T) {
	html := Render(`Click <a href="#" onclick="steal()">here</a>.`)
	assert.NotContains(t, html, "onclick")
}

func TestRenderBoldAndParagraphs(t *testing.T) {
	html := Render("This is **important** data.\n\nSecond paragraph.")
	assert.Contains(t, html, "<strong>important</strong>")
	assert.Equal(t, 2, strings.Count(html, "<p"))
}

func TestRenderLists(t *testing.T) {
	html := Render("- first issue\n- second issue\n\n1. fix this\n2. then this")
	assert.Equal(t, 1, strings.Count(html, "<ul"))
	assert.Equal(t, 1, strings.Count(html, "<ol"))
	assert.Equal(t, 4, strings.Count(html, "<li>"))
	assert.Contains(t, html, "<li>fix this</li>")
}

func TestRenderHeadings(t *testing.T) {
	html := Render("### Deep Dive\n\n📊 Pipeline Summary: mixed results")
	assert.Contains(t, html, "<h3")
	assert.Contains(t, html, "Deep Dive")
	assert.Contains(t, html, "<h4")
	assert.Contains(t, html, "Pipeline Summary")
}

func TestRenderPipeTable(t *testing.T) {
	body := strings.Join([]string{
		"| Metric | Value |",
		"|--------|-------|",
		"| Duplicates | 12 |",
		"| Missing Email | 4 |",
	}, "\n")

	html := Render(body)
	assert.Contains(t, html, "<table")
	assert.Contains(t, html, "<th>Metric</th>")
	assert.Contains(t, html, "<td>Duplicates</td>")
	assert.Contains(t, html, "<td>12</td>")
	assert.Equal(t, 3, strings.Count(html, "<tr>"))
	assert.NotContains(t, html, "--------")
}

func TestRenderSectionsFillsHTML(t *testing.T) {
	sections := RenderSections([]Section{{Title: "Overview", Body: "All **good**."}})
	assert.Contains(t, sections[0].HTML, "<strong>good</strong>")
	assert.Equal(t, "All **good**.", sections[0].Body)
}
