package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/flightagency/backend/internal/model"
)

// ReservationRepo persists reservations and resolves their composite view
// (user + flight + optional hotel, each with its destination) in a single
// query.  Every read uses the same join: user and flight are required so
// they join INNER, the hotel leg is optional so it joins LEFT along with
// its destination.  The user's password hash is never selected.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationSelect = `SELECT r.id, r.reservationDate,
       u.id, u.name, u.email, u.role,
       f.id, f.flight_number, f.departureCity, f.departureTime, f.arrivalTime, f.price, f.seatsAvailable,
       fd.id, fd.city, fd.country, fd.description, fd.image,
       h.id, h.name, h.stars, h.pricePerNight, h.image,
       hd.id, hd.city, hd.country, hd.description, hd.image
FROM Reservations r
INNER JOIN AppUsers u ON r.user_id = u.id
INNER JOIN Flights f ON r.flight_id = f.id
INNER JOIN Destinations fd ON f.destination_id = fd.id
LEFT JOIN Hotels h ON r.hotel_id = h.id
LEFT JOIN Destinations hd ON h.destination_id = hd.id`

func scanReservationRow(s rowScanner) (*model.Reservation, error) {
	var (
		res       model.Reservation
		user      model.AppUser
		flight    model.Flight
		fdest     model.Destination
		depCity   sql.NullString
		fdImage   sql.NullString
		hotelID   sql.NullInt64
		hotelName sql.NullString
		stars     sql.NullInt64
		perNight  sql.NullFloat64
		hImage    sql.NullString
		hdID      sql.NullInt64
		hdCity    sql.NullString
		hdCountry sql.NullString
		hdDesc    sql.NullString
		hdImage   sql.NullString
	)
	err := s.Scan(
		&res.ID, &res.ReservationDate,
		&user.ID, &user.Name, &user.Email, &user.Role,
		&flight.ID, &flight.FlightNumber, &depCity, &flight.DepartureTime,
		&flight.ArrivalTime, &flight.Price, &flight.SeatsAvailable,
		&fdest.ID, &fdest.City, &fdest.Country, &fdest.Description, &fdImage,
		&hotelID, &hotelName, &stars, &perNight, &hImage,
		&hdID, &hdCity, &hdCountry, &hdDesc, &hdImage,
	)
	if err != nil {
		return nil, err
	}
	if depCity.Valid {
		c := depCity.String
		flight.DepartureCity = &c
	}
	if fdImage.Valid {
		img := fdImage.String
		fdest.Image = &img
	}
	flight.Destination = &fdest
	res.User = &user
	res.Flight = &flight
	if hotelID.Valid {
		hotel := model.Hotel{
			ID:            hotelID.Int64,
			Name:          hotelName.String,
			Stars:         int(stars.Int64),
			PricePerNight: perNight.Float64,
		}
		if hImage.Valid {
			img := hImage.String
			hotel.Image = &img
		}
		hdest := model.Destination{
			ID:          hdID.Int64,
			City:        hdCity.String,
			Country:     hdCountry.String,
			Description: hdDesc.String,
		}
		if hdImage.Valid {
			img := hdImage.String
			hdest.Image = &img
		}
		hotel.Destination = &hdest
		res.Hotel = &hotel
	}
	return &res, nil
}

// Create inserts a reservation row and returns the generated ID.  The
// caller validates the references beforehand; a dangling reference still
// fails on the foreign key and is reported as ErrNotFound.  The flight's
// seat count is deliberately left untouched; the system has no stock
// management, matching the permissive booking model.
func (r *ReservationRepo) Create(ctx context.Context, userID, flightID int64, hotelID *int64, date time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO Reservations (user_id, flight_id, hotel_id, reservationDate) VALUES (?, ?, ?, ?)`,
		userID, flightID, nullID(hotelID), date)
	if isFKViolation(err) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID returns a fully resolved reservation or ErrNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx, reservationSelect+` WHERE r.id = ?`, id)
	res, err := scanReservationRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return res, err
}

// GetAll returns every reservation, fully resolved, ordered by id.
func (r *ReservationRepo) GetAll(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx, reservationSelect+` ORDER BY r.id`)
}

// GetByUserEmail returns the reservations whose owning user has exactly
// the given email.  An unknown email simply yields an empty list.
func (r *ReservationRepo) GetByUserEmail(ctx context.Context, email string) ([]model.Reservation, error) {
	return r.list(ctx, reservationSelect+` WHERE u.email = ? ORDER BY r.id`, email)
}

// GetByDestinationID returns reservations touching the destination on
// either leg: flights arriving there, or attached hotels located there.
// The hotel side only matches when a hotel is actually attached; a NULL
// hotel never matches by destination.  A reservation whose hotel sits in
// a different city than its flight is returned if either side matches.
func (r *ReservationRepo) GetByDestinationID(ctx context.Context, destinationID int64) ([]model.Reservation, error) {
	return r.list(ctx,
		reservationSelect+` WHERE fd.id = ? OR (hd.id = ? AND r.hotel_id IS NOT NULL) ORDER BY r.id`,
		destinationID, destinationID)
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservationRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces every associable field of the reservation in place.
// Attaching a hotel after creation goes through here: same statement,
// hotel_id moving from NULL to a value.
func (r *ReservationRepo) Update(ctx context.Context, id, userID, flightID int64, hotelID *int64, date time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE Reservations SET user_id = ?, flight_id = ?, hotel_id = ?, reservationDate = ? WHERE id = ?`,
		userID, flightID, nullID(hotelID), date, id)
	if isFKViolation(err) {
		return ErrNotFound
	}
	return err
}

// Delete removes a reservation row.  No side effects: the flight's seat
// count is not restored because it was never decremented.
func (r *ReservationRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM Reservations WHERE id = ?`, id)
	return err
}

// nullID converts an optional foreign key into a driver-friendly value.
func nullID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
