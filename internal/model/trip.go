// Package model defines the itinerary record rendered by the application.
//
// A Trip is built once, either from Go literals or decoded from YAML, and is
// never mutated afterwards. Renderers only hold read references to it.
package model

import (
	"github.com/tabi-shiori/shiori/internal/icon"
)

// Trip is the top-level itinerary record
type Trip struct {
	// Title is the document title
	Title  string   `yaml:"title" json:"title"`
	Page   PageInfo `yaml:"page" json:"page"`
	Days   []Day    `yaml:"days" json:"days"`
	Budget Budget   `yaml:"budget" json:"budget"`
	Notes  Notes    `yaml:"notes" json:"notes"`
}

// PageInfo holds the literals of the page shell
type PageInfo struct {
	// Heading is the visible header line
	Heading string `yaml:"heading" json:"heading"`
	// Subtitle is optional; an empty subtitle is not rendered
	Subtitle string    `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Icon     icon.Name `yaml:"icon" json:"icon"`
	Footer   string    `yaml:"footer" json:"footer"`
}

// Day is one calendar day of the trip
type Day struct {
	Day   int       `yaml:"day" json:"day"`
	Title string    `yaml:"title" json:"title"`
	Icon  icon.Name `yaml:"icon" json:"icon"`
	// Route is optional; a day has a route map iff Route is set
	Route    *Route          `yaml:"route,omitempty" json:"route,omitempty"`
	Schedule []ScheduleEntry `yaml:"schedule" json:"schedule"`
}

// HasRoute reports whether the day renders a route map
func (d Day) HasRoute() bool {
	return d.Route != nil
}

// Route describes a directions map as place names.
// The embed URL is derived from it together with the configured API key.
type Route struct {
	Origin      string   `yaml:"origin" json:"origin"`
	Destination string   `yaml:"destination" json:"destination"`
	Waypoints   []string `yaml:"waypoints,omitempty" json:"waypoints,omitempty"`
	Language    string   `yaml:"language,omitempty" json:"language,omitempty"`
	Region      string   `yaml:"region,omitempty" json:"region,omitempty"`
}

// ScheduleEntry is one timestamped event within a day
type ScheduleEntry struct {
	// Time is "HH:MM"
	Time  string    `yaml:"time" json:"time"`
	Event string    `yaml:"event" json:"event"`
	Icon  icon.Name `yaml:"icon" json:"icon"`
	// URL is an optional external informational page
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
}

// HasLink reports whether the entry renders an external link
func (e ScheduleEntry) HasLink() bool {
	return e.URL != ""
}

// Budget is the cost breakdown. Costs and Total are pre-formatted strings
// and are never parsed or summed.
type Budget struct {
	Title string       `yaml:"title" json:"title"`
	Items []BudgetItem `yaml:"items" json:"items"`
	Total string       `yaml:"total" json:"total"`
}

// BudgetItem is one line of the budget
type BudgetItem struct {
	Item string `yaml:"item" json:"item"`
	Cost string `yaml:"cost" json:"cost"`
}

// Notes is a titled list of free-text lines
type Notes struct {
	Title string   `yaml:"title" json:"title"`
	Items []string `yaml:"items" json:"items"`
}

// EntryCount returns the number of schedule entries across all days
func (t *Trip) EntryCount() int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Schedule)
	}
	return n
}

// HasRoutes reports whether any day carries a route map
func (t *Trip) HasRoutes() bool {
	for _, d := range t.Days {
		if d.HasRoute() {
			return true
		}
	}
	return false
}
