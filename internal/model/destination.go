package model

// Destination is a city/country pair that flights arrive at and hotels are
// located in.  It is an independent entity referenced (never owned) by
// Flight, Hotel and, transitively, Reservation.  This struct corresponds
// to a row in the `Destinations` table.
//
// Fields:
//
//	ID          – primary key identifier.
//	City        – city name.
//	Country     – country name.
//	Description – free-text marketing description.
//	Image       – optional image reference (nil when unset).
type Destination struct {
	ID          int64   `json:"id"`          // Destinations.id
	City        string  `json:"city"`        // Destinations.city
	Country     string  `json:"country"`     // Destinations.country
	Description string  `json:"description"` // Destinations.description
	Image       *string `json:"image"`       // Destinations.image (nullable)
}
