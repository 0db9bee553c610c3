package model

import "time"

// Flight represents a scheduled flight arriving at a Destination.  The
// departure city is free text and deliberately not a Destination
// reference; only the arrival side is structured.  SeatsAvailable is a
// static capacity figure: booking a reservation does not decrement it
// (see ReservationService).
//
// Fields:
//
//	ID             – primary key identifier.
//	FlightNumber   – airline flight code (e.g. "AF1").
//	DepartureCity  – free-text origin city (nil when unknown).
//	Destination    – arrival destination, resolved on reads.
//	DepartureTime  – scheduled departure timestamp (UTC).
//	ArrivalTime    – scheduled arrival timestamp (UTC).
//	Price          – ticket price as a currency amount.
//	SeatsAvailable – advertised seat capacity.
type Flight struct {
	ID             int64        `json:"id"`             // Flights.id
	FlightNumber   string       `json:"flightNumber"`   // Flights.flight_number
	DepartureCity  *string      `json:"departureCity"`  // Flights.departureCity (nullable)
	Destination    *Destination `json:"destination"`    // Flights.destination_id -> Destinations
	DepartureTime  time.Time    `json:"departureTime"`  // Flights.departureTime
	ArrivalTime    time.Time    `json:"arrivalTime"`    // Flights.arrivalTime
	Price          float64      `json:"price"`          // Flights.price
	SeatsAvailable int          `json:"seatsAvailable"` // Flights.seatsAvailable
}
