// Package render composes an itinerary into a format-neutral page view and
// exports that view as HTML, Markdown, JSON, terminal text or PDF.
package render

import (
	"github.com/tabi-shiori/shiori/internal/icon"
)

// Fixed labels of the page shell
const (
	ScheduleHeading = "スケジュール"
	TotalLabel      = "合計"
	mapTitle        = "ルートマップ"
)

// Attributes applied to every route map frame
const (
	MapLoading        = "lazy"
	MapReferrerPolicy = "strict-origin-when-cross-origin"
	MapSandbox        = "allow-scripts allow-same-origin allow-popups"
)

// Page is the composed document. Exporters only read it.
type Page struct {
	Title    string      `json:"title"`
	Heading  string      `json:"heading"`
	Subtitle string      `json:"subtitle,omitempty"`
	Icon     icon.Name   `json:"icon"`
	Days     []DayCard   `json:"days"`
	Budget   BudgetPanel `json:"budget"`
	Notes    NotesPanel  `json:"notes"`
	Footer   string      `json:"footer"`
}

// HasSubtitle reports whether the header shows a subtitle line
func (p *Page) HasSubtitle() bool {
	return p.Subtitle != ""
}

// DayCard is one day: header, optional map, then the timeline
type DayCard struct {
	Number int       `json:"day"`
	Title  string    `json:"title"`
	Header string    `json:"header"`
	Icon   icon.Name `json:"icon"`
	Map    *MapEmbed `json:"map,omitempty"`
	// ScheduleHeading is only set when a map precedes the timeline
	ScheduleHeading string        `json:"schedule_heading,omitempty"`
	Rows            []TimelineRow `json:"rows"`
}

// MapEmbed is a sandboxed, lazily loaded directions frame
type MapEmbed struct {
	URL            string `json:"url"`
	Title          string `json:"title"`
	Loading        string `json:"loading"`
	ReferrerPolicy string `json:"referrer_policy"`
	Sandbox        string `json:"sandbox"`
}

// TimelineRow is one schedule entry
type TimelineRow struct {
	Time  string    `json:"time"`
	Event string    `json:"event"`
	Icon  icon.Name `json:"icon"`
	URL   string    `json:"url,omitempty"`
	// Connector is true for every row except the last of its day
	Connector bool `json:"connector"`
}

// HasLink reports whether the row renders an external link
func (r TimelineRow) HasLink() bool {
	return r.URL != ""
}

// BudgetPanel shows costs verbatim and the literal total
type BudgetPanel struct {
	Title      string       `json:"title"`
	Icon       icon.Name    `json:"icon"`
	Items      []BudgetLine `json:"items"`
	TotalLabel string       `json:"total_label"`
	Total      string       `json:"total"`
}

// BudgetLine is one left/right row of the budget
type BudgetLine struct {
	Item string `json:"item"`
	Cost string `json:"cost"`
}

// NotesPanel is a titled bullet list
type NotesPanel struct {
	Title string    `json:"title"`
	Icon  icon.Name `json:"icon"`
	Items []string  `json:"items"`
}
