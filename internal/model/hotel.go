package model

// Hotel is a bookable hotel located in a Destination.  Stars range 1-5.
//
// Fields:
//
//	ID            – primary key identifier.
//	Name          – hotel name.
//	Destination   – location, resolved on reads.
//	Stars         – star rating (1-5).
//	PricePerNight – nightly rate as a currency amount.
//	Image         – optional image reference.
type Hotel struct {
	ID            int64        `json:"id"`            // Hotels.id
	Name          string       `json:"name"`          // Hotels.name
	Destination   *Destination `json:"destination"`   // Hotels.destination_id -> Destinations
	Stars         int          `json:"stars"`         // Hotels.stars
	PricePerNight float64      `json:"pricePerNight"` // Hotels.pricePerNight
	Image         *string      `json:"image"`         // Hotels.image (nullable)
}
