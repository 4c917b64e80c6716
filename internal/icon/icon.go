// Package icon is the closed registry of glyphs an itinerary may reference.
//
// Each Name maps to an SVG glyph for HTML and PDF output and to a single
// symbol for Markdown and terminal output. Names outside the registry are
// rejected by trip validation, so renderers never see an unknown icon.
package icon

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// Name identifies a glyph in the registry
type Name string

// Registered icons
const (
	Plane           Name = "plane"
	Car             Name = "car"
	Coffee          Name = "coffee"
	Mountain        Name = "mountain"
	Bath            Name = "bath"
	Hotel           Name = "hotel"
	UtensilsCrossed Name = "utensils-crossed"
	Waves           Name = "waves"
	TowerControl    Name = "tower-control"
	Camera          Name = "camera"
	Wallet          Name = "wallet"
	ClipboardList   Name = "clipboard-list"
	ExternalLink    Name = "external-link"
	Clock           Name = "clock"
	Map             Name = "map"
)

type glyph struct {
	svg    string // inner markup of a 24x24 stroke icon
	symbol string
}

var registry = map[Name]glyph{
	Plane: {
		svg:    `<path d="M17.8 19.2 16 11l3.5-3.5C21 6 21.5 4 21 3c-1-.5-3 0-4.5 1.5L13 8 4.8 6.2c-.5-.1-.9.1-1.1.5l-.3.5c-.2.5-.1 1 .3 1.3L9 12l-2 3H4l-1 1 3 2 2 3 1-1v-3l3-2 3.5 5.3c.3.4.8.5 1.3.3l.5-.2c.4-.3.6-.7.5-1.2z"/>`,
		symbol: "✈",
	},
	Car: {
		svg:    `<path d="M19 17h2c.6 0 1-.4 1-1v-3c0-.9-.7-1.7-1.5-1.9C18.7 10.6 16 10 16 10s-1.3-1.4-2.2-2.3c-.5-.4-1.1-.7-1.8-.7H5c-.6 0-1.1.4-1.4.9l-1.4 2.9A3.7 3.7 0 0 0 2 12v4c0 .6.4 1 1 1h2"/><circle cx="7" cy="17" r="2"/><path d="M9 17h6"/><circle cx="17" cy="17" r="2"/>`,
		symbol: "🚗",
	},
	Coffee: {
		svg:    `<path d="M10 2v2"/><path d="M14 2v2"/><path d="M16 8a1 1 0 0 1 1 1v8a4 4 0 0 1-4 4H7a4 4 0 0 1-4-4V9a1 1 0 0 1 1-1h14a4 4 0 1 1 0 8h-1"/><path d="M6 2v2"/>`,
		symbol: "☕",
	},
	Mountain: {
		svg:    `<path d="m8 3 4 8 5-5 5 15H2L8 3z"/>`,
		symbol: "⛰",
	},
	Bath: {
		svg:    `<path d="M9 6 6.5 3.5a1.5 1.5 0 0 0-1-.5C4.683 3 4 3.683 4 4.5V17a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2v-5"/><line x1="10" x2="8" y1="5" y2="7"/><line x1="2" x2="22" y1="12" y2="12"/><line x1="7" x2="7" y1="19" y2="21"/><line x1="17" x2="17" y1="19" y2="21"/>`,
		symbol: "♨",
	},
	Hotel: {
		svg:    `<path d="M10 22v-6.57"/><path d="M12 11h.01"/><path d="M12 7h.01"/><path d="M14 15.43V22"/><path d="M15 16a5 5 0 0 0-6 0"/><path d="M16 11h.01"/><path d="M16 7h.01"/><path d="M8 11h.01"/><path d="M8 7h.01"/><rect x="4" y="2" width="16" height="20" rx="2"/>`,
		symbol: "🏨",
	},
	UtensilsCrossed: {
		svg:    `<path d="m16 2-2.3 2.3a3 3 0 0 0 0 4.2l1.8 1.8a3 3 0 0 0 4.2 0L22 8"/><path d="M15 15 3.3 3.3a4.2 4.2 0 0 0 0 6l7.3 7.3c.7.7 2 .7 2.8 0L15 15Zm0 0 7 7"/><path d="m2.1 21.8 6.4-6.3"/><path d="m19 5-7 7"/>`,
		symbol: "🍴",
	},
	Waves: {
		svg:    `<path d="M2 6c.6.5 1.2 1 2.5 1C7 7 7 5 9.5 5c2.6 0 2.4 2 5 2 2.5 0 2.5-2 5-2 1.3 0 1.9.5 2.5 1"/><path d="M2 12c.6.5 1.2 1 2.5 1 2.5 0 2.5-2 5-2 2.6 0 2.4 2 5 2 2.5 0 2.5-2 5-2 1.3 0 1.9.5 2.5 1"/><path d="M2 18c.6.5 1.2 1 2.5 1 2.5 0 2.5-2 5-2 2.6 0 2.4 2 5 2 2.5 0 2.5-2 5-2 1.3 0 1.9.5 2.5 1"/>`,
		symbol: "🌊",
	},
	TowerControl: {
		svg:    `<path d="M18.2 12.27 20 6H4l1.8 6.27a1 1 0 0 0 .95.73h10.5a1 1 0 0 0 .96-.73Z"/><path d="M8 13v9"/><path d="M16 22v-9"/><path d="m9 6 1 7"/><path d="m15 6-1 7"/><path d="M12 6V2"/><path d="M13 2h-2"/>`,
		symbol: "🗼",
	},
	Camera: {
		svg:    `<path d="M14.5 4h-5L7 7H4a2 2 0 0 0-2 2v9a2 2 0 0 0 2 2h16a2 2 0 0 0 2-2V9a2 2 0 0 0-2-2h-3l-2.5-3z"/><circle cx="12" cy="13" r="3"/>`,
		symbol: "📷",
	},
	Wallet: {
		svg:    `<path d="M19 7V4a1 1 0 0 0-1-1H5a2 2 0 0 0 0 4h15a1 1 0 0 1 1 1v4h-3a2 2 0 0 0 0 4h3a1 1 0 0 0 1-1v-2a1 1 0 0 0-1-1"/><path d="M3 5v14a2 2 0 0 0 2 2h15a1 1 0 0 0 1-1v-4"/>`,
		symbol: "👛",
	},
	ClipboardList: {
		svg:    `<rect width="8" height="4" x="8" y="2" rx="1" ry="1"/><path d="M16 4h2a2 2 0 0 1 2 2v14a2 2 0 0 1-2 2H6a2 2 0 0 1-2-2V6a2 2 0 0 1 2-2h2"/><path d="M12 11h4"/><path d="M12 16h4"/><path d="M8 11h.01"/><path d="M8 16h.01"/>`,
		symbol: "📋",
	},
	ExternalLink: {
		svg:    `<path d="M15 3h6v6"/><path d="M10 14 21 3"/><path d="M18 13v6a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2V8a2 2 0 0 1 2-2h6"/>`,
		symbol: "🔗",
	},
	Clock: {
		svg:    `<circle cx="12" cy="12" r="10"/><polyline points="12 6 12 12 16 14"/>`,
		symbol: "🕒",
	},
	Map: {
		svg:    `<path d="M14.106 5.553a2 2 0 0 0 1.788 0l3.659-1.83A1 1 0 0 1 21 4.619v12.764a1 1 0 0 1-.553.894l-4.553 2.277a2 2 0 0 1-1.788 0l-4.212-2.106a2 2 0 0 0-1.788 0l-3.659 1.83A1 1 0 0 1 3 19.381V6.618a1 1 0 0 1 .553-.894l4.553-2.277a2 2 0 0 1 1.788 0z"/><path d="M15 5.764v15"/><path d="M9 3.236v15"/>`,
		symbol: "🗺",
	},
}

// Valid reports whether n is a registered icon
func (n Name) Valid() bool {
	_, ok := registry[n]
	return ok
}

func (n Name) String() string {
	return string(n)
}

// All returns every registered icon name, sorted
func All() []Name {
	names := make([]Name, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// SVG returns the inline SVG element for n at the given pixel size.
// class is added to the element when non-empty. Unknown names yield an empty string.
func SVG(n Name, size int, class string) template.HTML {
	g, ok := registry[n]
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 24 24"`, size, size)
	b.WriteString(` fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"`)
	if class != "" {
		b.WriteString(` class="` + template.HTMLEscapeString(class) + `"`)
	}
	fmt.Fprintf(&b, ` data-icon="%s" aria-hidden="true">`, n)
	b.WriteString(g.svg)
	b.WriteString(`</svg>`)

	// Glyph markup is a compile-time constant from the registry
	return template.HTML(b.String())
}

// Symbol returns the plain-text symbol for n, or "•" for unknown names
func Symbol(n Name) string {
	if g, ok := registry[n]; ok {
		return g.symbol
	}
	return "•"
}
