package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flightagency/backend/internal/model"
)

// FlightRepo provides CRUD operations for flights.  All reads resolve the
// arrival destination with a join so callers never see a bare
// destination_id.  Timestamps are assumed to be stored in UTC.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo returns a new FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

const flightSelect = `SELECT f.id, f.flight_number, f.departureCity,
       f.departureTime, f.arrivalTime, f.price, f.seatsAvailable,
       d.id, d.city, d.country, d.description, d.image
FROM Flights f
INNER JOIN Destinations d ON f.destination_id = d.id`

func scanFlight(s rowScanner) (*model.Flight, error) {
	var f model.Flight
	var dest model.Destination
	var depCity, destImage sql.NullString
	err := s.Scan(
		&f.ID, &f.FlightNumber, &depCity,
		&f.DepartureTime, &f.ArrivalTime, &f.Price, &f.SeatsAvailable,
		&dest.ID, &dest.City, &dest.Country, &dest.Description, &destImage,
	)
	if err != nil {
		return nil, err
	}
	if depCity.Valid {
		c := depCity.String
		f.DepartureCity = &c
	}
	if destImage.Valid {
		img := destImage.String
		dest.Image = &img
	}
	f.Destination = &dest
	return &f, nil
}

// GetAll returns every flight with its destination resolved.
func (r *FlightRepo) GetAll(ctx context.Context) ([]model.Flight, error) {
	return r.list(ctx, flightSelect+` ORDER BY f.id`)
}

// GetByDestinationID returns the flights arriving at the given destination.
func (r *FlightRepo) GetByDestinationID(ctx context.Context, destinationID int64) ([]model.Flight, error) {
	return r.list(ctx, flightSelect+` WHERE f.destination_id = ? ORDER BY f.id`, destinationID)
}

func (r *FlightRepo) list(ctx context.Context, query string, args ...any) ([]model.Flight, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single flight or ErrNotFound.
func (r *FlightRepo) GetByID(ctx context.Context, id int64) (*model.Flight, error) {
	row := r.db.QueryRowContext(ctx, flightSelect+` WHERE f.id = ?`, id)
	f, err := scanFlight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

// Create inserts a flight and populates the generated ID.  The caller is
// expected to have validated that the destination exists; a dangling
// reference still fails on the foreign key and is reported as ErrNotFound.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO Flights (flight_number, departureCity, destination_id, departureTime, arrivalTime, price, seatsAvailable)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.FlightNumber, nullString(f.DepartureCity), f.Destination.ID,
		f.DepartureTime, f.ArrivalTime, f.Price, f.SeatsAvailable)
	if isFKViolation(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

// Update replaces all mutable columns of an existing flight.
func (r *FlightRepo) Update(ctx context.Context, f *model.Flight) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE Flights SET flight_number = ?, departureCity = ?, destination_id = ?,
		 departureTime = ?, arrivalTime = ?, price = ?, seatsAvailable = ? WHERE id = ?`,
		f.FlightNumber, nullString(f.DepartureCity), f.Destination.ID,
		f.DepartureTime, f.ArrivalTime, f.Price, f.SeatsAvailable, f.ID)
	if isFKViolation(err) {
		return ErrNotFound
	}
	return err
}

// Delete removes a flight.  ErrInUse is returned while reservations still
// reference it.
func (r *FlightRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM Flights WHERE id = ?`, id)
	if isFKViolation(err) {
		return ErrInUse
	}
	return err
}
