package domain

import "math"

const (
	metersPerKilometer = 1000.0
	secondsPerMinute   = 60.0
)

// Driving distance and duration between two raw coordinate strings.
// Origin and Destination are echoed exactly as the client sent them.
type DistanceResult struct {
	Origin      string
	Destination string
	DistanceKm  float64
	DurationMin float64
}

// Kilometers converts meters to kilometers rounded to 2 decimal places.
func Kilometers(meters float64) float64 {
	return Round(meters/metersPerKilometer, 2)
}

// Minutes converts seconds to whole minutes, kept as a float.
func Minutes(seconds float64) float64 {
	return Round(seconds/secondsPerMinute, 0)
}

// Round rounds x to the given number of decimal places. Ties go to the
// even neighbour, so 0.125 km is 0.12 and 280.5 min is 280.
func Round(x float64, places int) float64 {
	if places <= 0 {
		return math.RoundToEven(x)
	}
	p := math.Pow10(places)
	return math.RoundToEven(x*p) / p
}
