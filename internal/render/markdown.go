package render

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tabi-shiori/shiori/internal/icon"
)

// Budget table column headers
const (
	budgetItemHeader = "項目"
	budgetCostHeader = "金額"
)

// MarkdownExporter exports a page to GitHub-flavoured Markdown
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export writes the header, one section per day, the budget table, the notes
// list and the footer, in that order
func (e *MarkdownExporter) Export(_ context.Context, page *Page) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s %s\n\n", icon.Symbol(page.Icon), escapeInline(page.Heading))
	if page.HasSubtitle() {
		fmt.Fprintf(&sb, "> %s\n\n", escapeInline(page.Subtitle))
	}

	for _, day := range page.Days {
		fmt.Fprintf(&sb, "## %s %s\n\n", icon.Symbol(day.Icon), escapeInline(day.Header))

		if day.Map != nil {
			fmt.Fprintf(&sb, "%s [%s](%s)\n\n", icon.Symbol(icon.Map), escapeInline(day.Map.Title), day.Map.URL)
		}
		if day.ScheduleHeading != "" {
			fmt.Fprintf(&sb, "### %s\n\n", escapeInline(day.ScheduleHeading))
		}

		for _, row := range day.Rows {
			fmt.Fprintf(&sb, "- `%s` %s %s", row.Time, icon.Symbol(row.Icon), escapeInline(row.Event))
			if row.HasLink() {
				fmt.Fprintf(&sb, " [%s](%s)", icon.Symbol(icon.ExternalLink), row.URL)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	b := page.Budget
	fmt.Fprintf(&sb, "## %s %s\n\n", icon.Symbol(b.Icon), escapeInline(b.Title))
	fmt.Fprintf(&sb, "| %s | %s |\n|:---|---:|\n", budgetItemHeader, budgetCostHeader)
	for _, item := range b.Items {
		fmt.Fprintf(&sb, "| %s | %s |\n", escapeTableCell(item.Item), escapeTableCell(item.Cost))
	}
	fmt.Fprintf(&sb, "| **%s** | **%s** |\n\n", escapeTableCell(b.TotalLabel), escapeTableCell(b.Total))

	n := page.Notes
	fmt.Fprintf(&sb, "## %s %s\n\n", icon.Symbol(n.Icon), escapeInline(n.Title))
	for _, note := range n.Items {
		fmt.Fprintf(&sb, "- %s\n", escapeInline(note))
	}

	fmt.Fprintf(&sb, "\n---\n\n%s\n", escapeInline(page.Footer))

	return []byte(sb.String()), nil
}

// escapeTableCell keeps pipes inside a cell from splitting the row
func escapeTableCell(s string) string {
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}

var (
	newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
	inlineReplacer  = strings.NewReplacer(
		`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "~", `\~`,
		"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`,
	)
	orderedMarker = regexp.MustCompile(`^(\d{1,9})([.)])`)
)

// escapeInline makes s plain text on a single Markdown line: metacharacters
// are backslash-escaped and a leading list marker is neutralised
func escapeInline(s string) string {
	s = inlineReplacer.Replace(newlineReplacer.Replace(s))
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return `\` + s
	}
	return orderedMarker.ReplaceAllString(s, `$1\$2`)
}

// Name returns the human-readable name of this exporter
func (e *MarkdownExporter) Name() string {
	return "Markdown"
}

// FileExtension returns the file extension for Markdown files
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// ContentType returns the MIME type of Markdown documents
func (e *MarkdownExporter) ContentType() string {
	return "text/markdown; charset=utf-8"
}
