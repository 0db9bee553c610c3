package model

import "time"

// Reservation links a user to a flight and, optionally, a hotel.  The
// invariant is exactly one user and one flight per reservation; the hotel
// is either absent or a valid hotel reference, and may be attached once
// after creation via an update.  The reservation owns this composite view
// only for its own lifetime; the referenced entities live independently.
//
// When the struct is bound from a request body, only the IDs of the
// nested entities matter; reads return them fully resolved, including the
// destination of the flight leg and of the hotel leg.
//
// Fields:
//
//	ID              – primary key identifier.
//	User            – owning user (required).
//	Flight          – booked flight (required).
//	Hotel           – attached hotel, nil when none.
//	ReservationDate – when the reservation was made (UTC).
type Reservation struct {
	ID              int64     `json:"id"`              // Reservations.id
	User            *AppUser  `json:"user"`            // Reservations.user_id -> AppUsers
	Flight          *Flight   `json:"flight"`          // Reservations.flight_id -> Flights
	Hotel           *Hotel    `json:"hotel"`           // Reservations.hotel_id -> Hotels (nullable)
	ReservationDate time.Time `json:"reservationDate"` // Reservations.reservationDate
}
