// Package mapembed builds directions-embed URLs for route maps.
//
// The API key is never part of the itinerary data. It is injected from
// configuration when the Builder is created.
package mapembed

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/tabi-shiori/shiori/internal/model"
	"github.com/tabi-shiori/shiori/pkg/errors"
)

// DefaultBaseURL is the Google Maps Embed API directions endpoint
const DefaultBaseURL = "https://www.google.com/maps/embed/v1/directions"

// waypointSeparator is the percent-encoded "|" delimiting ordered waypoints.
// Encoding it keeps the URL byte-stable through HTML attribute normalization.
const waypointSeparator = "%7C"

// Builder derives embed URLs from routes
type Builder struct {
	BaseURL string
	APIKey  string
	// Language and Region apply when a route does not set its own
	Language string
	Region   string
}

// New creates a Builder with the default endpoint
func New(apiKey, lang, region string) *Builder {
	return &Builder{
		BaseURL:  DefaultBaseURL,
		APIKey:   apiKey,
		Language: lang,
		Region:   region,
	}
}

// HasKey reports whether an API key is configured.
// Without one the embed still renders but the map fails inside its frame.
func (b *Builder) HasKey() bool {
	return strings.TrimSpace(b.APIKey) != ""
}

// URL returns the embed URL for r. Parameters appear in the order
// key, origin, destination, waypoints, language, region.
func (b *Builder) URL(r *model.Route) (string, error) {
	if r == nil {
		return "", errors.New(errors.ErrCodeMapEmbed, "route is nil")
	}
	if r.Origin == "" || r.Destination == "" {
		return "", errors.New(errors.ErrCodeMapEmbed, "route needs both origin and destination")
	}

	base := b.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return "", errors.Wrap(errors.ErrCodeMapEmbed, "invalid map base URL", err)
	}

	lang, err := canonicalLanguage(firstNonEmpty(r.Language, b.Language))
	if err != nil {
		return "", err
	}
	region, err := canonicalRegion(firstNonEmpty(r.Region, b.Region))
	if err != nil {
		return "", err
	}

	var q strings.Builder
	param := func(key, value string) {
		if q.Len() > 0 {
			q.WriteByte('&')
		}
		q.WriteString(key)
		q.WriteByte('=')
		q.WriteString(value)
	}

	param("key", url.QueryEscape(b.APIKey))
	param("origin", url.QueryEscape(r.Origin))
	param("destination", url.QueryEscape(r.Destination))
	if len(r.Waypoints) > 0 {
		escaped := make([]string, len(r.Waypoints))
		for i, w := range r.Waypoints {
			escaped[i] = url.QueryEscape(w)
		}
		param("waypoints", strings.Join(escaped, waypointSeparator))
	}
	if lang != "" {
		param("language", lang)
	}
	if region != "" {
		param("region", region)
	}

	return base + "?" + q.String(), nil
}

// canonicalLanguage normalizes a BCP 47 tag, e.g. "JA" -> "ja", "zh_hant" -> "zh-Hant"
func canonicalLanguage(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMapEmbed, fmt.Sprintf("invalid map language %q", s), err)
	}
	return tag.String(), nil
}

// canonicalRegion normalizes a region code to the lowercase form the embed API expects
func canonicalRegion(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	region, err := language.ParseRegion(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMapEmbed, fmt.Sprintf("invalid map region %q", s), err)
	}
	return strings.ToLower(region.String()), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
