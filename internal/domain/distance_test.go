package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKilometers(t *testing.T) {
	tests := []struct {
		meters float64
		want   float64
	}{
		{465000, 465},
		{1234.4, 1.23},
		{1235.1, 1.24},
		{999.4, 1},
		{0, 0},
		{125, 0.12},
		{375, 0.38},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Kilometers(tt.meters), "Kilometers(%v)", tt.meters)
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		seconds float64
		want    float64
	}{
		{16800, 280},
		{89, 1},
		{29.9, 0},
		{90, 2},
		{3661.7, 61},
		{16830, 280},
		{16890, 282},
		{30, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Minutes(tt.seconds), "Minutes(%v)", tt.seconds)
	}
}

func TestRoundingLaw(t *testing.T) {
	for _, raw := range []float64{0.1, 12.3456789, 98765.4321, 1.005, 123456.789012, 7.77777} {
		km := Kilometers(raw)
		assert.InDelta(t, km, math.Round(km*100)/100, 1e-9, "distance %v has more than 2 decimals", km)

		min := Minutes(raw)
		assert.Equal(t, math.Trunc(min), min, "duration %v is not whole", min)
	}
}
