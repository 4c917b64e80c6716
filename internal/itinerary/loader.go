package itinerary

import (
	"bytes"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tabi-shiori/shiori/internal/model"
	"github.com/tabi-shiori/shiori/pkg/errors"
	"github.com/tabi-shiori/shiori/pkg/logger"
)

// Load reads a trip from a YAML file and validates it
func Load(path string) (*model.Trip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeTripNotFound, "trip file not found: "+path, err)
		}
		return nil, errors.Wrap(errors.ErrCodeTripParse, "failed to read trip file", err)
	}

	trip, err := Parse(data)
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded trip file",
		zap.String("path", path),
		zap.String(logger.FieldTrip, trip.Title),
		zap.Int("days", len(trip.Days)),
	)
	return trip, nil
}

// Parse decodes and validates a YAML trip document.
// Unknown fields are rejected so typos do not silently drop content.
func Parse(data []byte) (*model.Trip, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var trip model.Trip
	if err := dec.Decode(&trip); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTripParse, fmt.Sprintf("failed to parse trip: %v", err), err)
	}

	if err := trip.Validate(); err != nil {
		return nil, err
	}
	return &trip, nil
}

// Resolve picks a trip file when path is set, otherwise the named built-in trip
func Resolve(name, path string) (*model.Trip, error) {
	if path != "" {
		return Load(path)
	}
	if name == "" {
		name = DefaultTrip
	}
	return Lookup(name)
}
