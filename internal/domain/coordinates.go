package domain

import (
	"errors"
	"strconv"
	"strings"
)

const (
	msgCoordinateFormat = `Coordinates must be in the format "latitude,longitude"`
	msgCoordinateFloat  = "Latitude and Longitude must be valid float numbers"
)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// ParseCoordinates parses a raw "latitude,longitude" string.
//
// The returned Coordinates hold the values in provider order (lon, lat).
// Malformed input yields a *ValidationError; no range checks are applied.
func ParseCoordinates(raw string) (Coordinates, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Coordinates{}, &ValidationError{Message: msgCoordinateFormat}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, &ValidationError{Message: msgCoordinateFloat}
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, &ValidationError{Message: msgCoordinateFloat}
	}

	return Coordinates{Lon: lon, Lat: lat}, nil
}

// ParseField is ParseCoordinates with the request field name attached to any error.
func ParseField(field, raw string) (Coordinates, error) {
	c, err := ParseCoordinates(raw)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Field = field
		}
		return Coordinates{}, err
	}

	return c, nil
}
