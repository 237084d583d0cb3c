package dto

// Pointers distinguish an absent key (rejected by validation) from an empty
// string, which is left to coordinate parsing.
type DistanceRequest struct {
	Origin      *string `json:"origin" validate:"required"`
	Destination *string `json:"destination" validate:"required"`
}

type DistanceResponse struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
