// File path: internal/report/markdown.go
package report

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	numberedPattern  = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	separatorPattern = regexp.MustCompile(`^\|?[\s:|-]+\|?$`)
)

// headingEmoji marks "label:" lines the generator likes to emit in place of
// real headings; they get promoted to sub-headings.
var headingEmoji = []string{"📊", "🔍", "💰", "✅", "📈", "⚠️", "💡", "🎯", "🚀", "📝"}

// sanitizer neutralizes anything executable in the generated text before it
// reaches the page. The text source is a third-party generation service, so
// this pass is mandatory, not polish.
var sanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}()

// Render converts one section body from the generator's loose markdown into
// sanitized HTML. Recognizes pipe tables, level-3 headings, emoji label
// lines, bold spans, and bullet/numbered lists; everything else becomes
// paragraphs.
func Render(body string) string {
	lines := strings.Split(body, "\n")

	var out []string
	var listItems []string
	var listTag string
	var para []string

	flushList := func() {
		if len(listItems) == 0 {
			return
		}
		out = append(out, "<"+listTag+` class="report-list">`+strings.Join(listItems, "")+"</"+listTag+">")
		listItems = nil
	}
	flushPara := func() {
		if len(para) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(para, " "))
		if text != "" {
			out = append(out, `<p class="report-paragraph">`+renderInline(text)+"</p>")
		}
		para = nil
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch {
		case line == "":
			flushList()
			flushPara()

		case isTableRow(line) && i+1 < len(lines) && isTableSeparator(strings.TrimSpace(lines[i+1])):
			flushList()
			flushPara()
			table, consumed := renderTable(lines[i:])
			out = append(out, table)
			i += consumed - 1

		case strings.HasPrefix(line, "### "):
			flushList()
			flushPara()
			out = append(out, `<h3 class="report-heading">`+renderInline(strings.TrimPrefix(line, "### "))+"</h3>")

		case isEmojiLabel(line):
			flushList()
			flushPara()
			out = append(out, `<h4 class="report-subheading">`+renderInline(line)+"</h4>")

		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			flushPara()
			if listTag != "ul" {
				flushList()
				listTag = "ul"
			}
			listItems = append(listItems, "<li>"+renderInline(line[2:])+"</li>")

		case numberedPattern.MatchString(line):
			flushPara()
			if listTag != "ol" {
				flushList()
				listTag = "ol"
			}
			item := numberedPattern.FindStringSubmatch(line)[1]
			listItems = append(listItems, "<li>"+renderInline(item)+"</li>")

		default:
			flushList()
			para = append(para, line)
		}
	}
	flushList()
	flushPara()

	return sanitizer.Sanitize(strings.Join(out, "\n"))
}

func renderInline(text string) string {
	return boldPattern.ReplaceAllString(text, `<strong>$1</strong>`)
}

func isTableRow(line string) bool {
	return strings.HasPrefix(line, "|") && strings.Count(line, "|") >= 2
}

func isTableSeparator(line string) bool {
	return isTableRow(line) && separatorPattern.MatchString(line)
}

func isEmojiLabel(line string) bool {
	if !strings.Contains(line, ":") {
		return false
	}
	for _, e := range headingEmoji {
		if strings.HasPrefix(line, e) {
			return true
		}
	}
	return false
}

// renderTable consumes the contiguous pipe-table rows starting at lines[0]
// (header, separator, body rows) and returns the HTML plus the number of
// lines consumed.
func renderTable(lines []string) (string, int) {
	consumed := 0
	var rows [][]string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !isTableRow(trimmed) {
			break
		}
		consumed++
		if isTableSeparator(trimmed) {
			continue
		}
		rows = append(rows, splitTableRow(trimmed))
	}
	if len(rows) == 0 {
		return "", consumed
	}

	var b strings.Builder
	b.WriteString(`<table class="report-table"><thead><tr>`)
	for _, cell := range rows[0] {
		b.WriteString("<th>" + renderInline(cell) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range rows[1:] {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + renderInline(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String(), consumed
}

func splitTableRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// RenderSections fills each section's HTML from its body.
func RenderSections(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		s.HTML = Render(s.Body)
		out[i] = s
	}
	return out
}
