// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a reservation is successfully
// persisted.  It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID   int64   `json:"reservation_id"`
	UserID          int64   `json:"user_id"`
	UserEmail       string  `json:"user_email"`
	FlightID        int64   `json:"flight_id"`
	FlightNumber    string  `json:"flight_number"`
	DestinationCity string  `json:"destination_city"`
	HotelID         *int64  `json:"hotel_id,omitempty"`
	HotelName       *string `json:"hotel_name,omitempty"`
	ReservationDate string  `json:"reservation_date"`
	CreatedAt       string  `json:"created_at"`
}
