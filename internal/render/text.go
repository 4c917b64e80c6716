package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/tabi-shiori/shiori/internal/icon"
)

const (
	defaultTextWidth = 80
	connectorGlyph   = "┆"
	ruleGlyph        = "─"
)

// TextOptions controls terminal rendering
type TextOptions struct {
	// Color enables ANSI styling
	Color bool
	// Width is the terminal width used to decide whether panels sit side by side
	Width int
}

// TextExporter renders a page for a terminal
type TextExporter struct {
	opts TextOptions
}

// NewTextExporter creates a new terminal text exporter
func NewTextExporter(opts TextOptions) *TextExporter {
	if opts.Width <= 0 {
		opts.Width = defaultTextWidth
	}
	return &TextExporter{opts: opts}
}

type textStyles struct {
	heading  lipgloss.Style
	subtitle lipgloss.Style
	card     lipgloss.Style
	title    lipgloss.Style
	badge    lipgloss.Style
	muted    lipgloss.Style
	link     lipgloss.Style
	total    lipgloss.Style
}

func (e *TextExporter) styles() textStyles {
	r := lipgloss.NewRenderer(io.Discard)
	if e.opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	border := lipgloss.Color("245")
	return textStyles{
		heading:  r.NewStyle().Bold(true),
		subtitle: r.NewStyle().Foreground(lipgloss.Color("245")),
		card:     r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		title:    r.NewStyle().Bold(true),
		badge:    r.NewStyle().Foreground(lipgloss.Color("39")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("245")),
		link:     r.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		total:    r.NewStyle().Bold(true),
	}
}

// Export renders the header, day cards, panels and footer
func (e *TextExporter) Export(_ context.Context, page *Page) ([]byte, error) {
	s := e.styles()
	blocks := []string{e.header(s, page)}

	for _, day := range page.Days {
		blocks = append(blocks, e.dayCard(s, day))
	}

	budget := e.budgetPanel(s, page.Budget)
	notes := e.notesPanel(s, page.Notes)
	if lipgloss.Width(budget)+1+lipgloss.Width(notes) <= e.opts.Width {
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, budget, " ", notes))
	} else {
		blocks = append(blocks, budget, notes)
	}

	blocks = append(blocks, s.muted.Render(page.Footer))

	return []byte(strings.Join(blocks, "\n\n") + "\n"), nil
}

func (e *TextExporter) header(s textStyles, page *Page) string {
	lines := []string{s.heading.Render(icon.Symbol(page.Icon) + " " + page.Heading)}
	if page.HasSubtitle() {
		lines = append(lines, s.subtitle.Render(page.Subtitle))
	}
	return strings.Join(lines, "\n")
}

func (e *TextExporter) dayCard(s textStyles, day DayCard) string {
	var lines []string
	lines = append(lines, s.title.Render(icon.Symbol(day.Icon)+" "+day.Header), "")

	if day.Map != nil {
		lines = append(lines,
			fmt.Sprintf("%s %s", icon.Symbol(icon.Map), day.Map.Title),
			"  "+s.link.Render(day.Map.URL),
			"",
		)
	}
	if day.ScheduleHeading != "" {
		lines = append(lines, s.title.Render(day.ScheduleHeading))
	}

	for _, row := range day.Rows {
		lines = append(lines, e.timelineRow(s, row)...)
	}

	return s.card.Render(strings.Join(lines, "\n"))
}

// timelineRow returns the row line, its link line when present, and the
// connector line for every row except the last
func (e *TextExporter) timelineRow(s textStyles, row TimelineRow) []string {
	badge := s.badge.Render("[" + row.Time + "]")
	lines := []string{fmt.Sprintf("%s %s %s", badge, padSymbol(icon.Symbol(row.Icon)), row.Event)}

	if row.HasLink() {
		indent := strings.Repeat(" ", len(row.Time)+3)
		lines = append(lines, indent+icon.Symbol(icon.ExternalLink)+" "+s.link.Render(row.URL))
	}
	if row.Connector {
		lines = append(lines, "   "+s.muted.Render(connectorGlyph))
	}
	return lines
}

func (e *TextExporter) budgetPanel(s textStyles, b BudgetPanel) string {
	width := runewidth.StringWidth(b.TotalLabel) + 2 + runewidth.StringWidth(b.Total)
	for _, item := range b.Items {
		if w := runewidth.StringWidth(item.Item) + 2 + runewidth.StringWidth(item.Cost); w > width {
			width = w
		}
	}

	lines := []string{s.title.Render(icon.Symbol(b.Icon) + " " + b.Title), ""}
	for _, item := range b.Items {
		lines = append(lines, padBetween(item.Item, item.Cost, width))
	}
	lines = append(lines,
		s.muted.Render(strings.Repeat(ruleGlyph, width)),
		s.total.Render(padBetween(b.TotalLabel, b.Total, width)),
	)
	return s.card.Render(strings.Join(lines, "\n"))
}

func (e *TextExporter) notesPanel(s textStyles, n NotesPanel) string {
	lines := []string{s.title.Render(icon.Symbol(n.Icon) + " " + n.Title), ""}
	for _, note := range n.Items {
		lines = append(lines, "• "+note)
	}
	return s.card.Render(strings.Join(lines, "\n"))
}

// padBetween left-aligns left and right-aligns right within width display cells
func padBetween(left, right string, width int) string {
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// padSymbol pads narrow symbols to two cells so event labels line up
func padSymbol(symbol string) string {
	if runewidth.StringWidth(symbol) < 2 {
		return symbol + " "
	}
	return symbol
}

// Name returns the human-readable name of this exporter
func (e *TextExporter) Name() string {
	return "Text"
}

// FileExtension returns the file extension for text files
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// ContentType returns the MIME type of terminal text
func (e *TextExporter) ContentType() string {
	return "text/plain; charset=utf-8"
}
