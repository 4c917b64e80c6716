// Package idgen provides ID generation utilities for the application.
// IDs are xid values: globally unique, sortable by creation time and URL-safe.
package idgen

import "github.com/rs/xid"

// NewID generates a new globally unique, sortable 20-character identifier.
func NewID() string {
	return xid.New().String()
}

// NewRenderID generates an ID correlating the log lines of one render pass.
// It never appears in rendered output, so documents stay byte-stable.
func NewRenderID() string {
	return NewID()
}

// NewRequestID generates a unique ID for request tracking.
func NewRequestID() string {
	return NewID()
}

// Valid reports whether id parses as an xid.
// Used to decide whether an incoming X-Request-ID header can be reused.
func Valid(id string) bool {
	_, err := xid.FromString(id)
	return err == nil
}

