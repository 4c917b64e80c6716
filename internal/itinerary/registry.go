// Package itinerary provides the built-in trips and loads trips from YAML files.
package itinerary

import (
	"sort"

	"github.com/tabi-shiori/shiori/internal/model"
	"github.com/tabi-shiori/shiori/pkg/errors"
)

// DefaultTrip is rendered when no trip is selected
const DefaultTrip = Ehime

var builtin = map[string]func() *model.Trip{
	Ehime:      ehimeTrip,
	EhimeRoute: ehimeRouteTrip,
}

// Lookup returns a fresh, validated copy of the named built-in trip
func Lookup(name string) (*model.Trip, error) {
	build, ok := builtin[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeTripNotFound, "trip not found: "+name).
			WithDetails(map[string]any{"available": Names()})
	}
	trip := build()
	if err := trip.Validate(); err != nil {
		return nil, err
	}
	return trip, nil
}

// Names returns the built-in trip names, sorted
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
