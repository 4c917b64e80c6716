// Package handler provides HTTP handlers for the itinerary server.
package handler

import (
	"crypto/sha256"
	"fmt"
	"mime"
	"strings"
)

// computeContentHash calculates SHA256 hash of content
func computeContentHash(content []byte) string {
	h := sha256.Sum256(content)
	return fmt.Sprintf("%x", h)
}

// entityTag returns a strong ETag for content
func entityTag(content []byte) string {
	return `"` + computeContentHash(content)[:32] + `"`
}

// etagMatches reports whether an If-None-Match header value matches etag
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// contentDisposition builds a Content-Disposition value. Non-ASCII file
// names are encoded per RFC 2231 so Japanese titles survive the header.
func contentDisposition(disposition, filename string) string {
	if filename == "" {
		return disposition
	}
	if v := mime.FormatMediaType(disposition, map[string]string{"filename": filename}); v != "" {
		return v
	}
	return disposition
}
