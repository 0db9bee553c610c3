package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flightagency/backend/internal/model"
)

// HotelRepo provides CRUD operations for hotels.  Like FlightRepo, all
// reads resolve the destination with a join.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelSelect = `SELECT h.id, h.name, h.stars, h.pricePerNight, h.image,
       d.id, d.city, d.country, d.description, d.image
FROM Hotels h
INNER JOIN Destinations d ON h.destination_id = d.id`

func scanHotel(s rowScanner) (*model.Hotel, error) {
	var h model.Hotel
	var dest model.Destination
	var hotelImage, destImage sql.NullString
	err := s.Scan(
		&h.ID, &h.Name, &h.Stars, &h.PricePerNight, &hotelImage,
		&dest.ID, &dest.City, &dest.Country, &dest.Description, &destImage,
	)
	if err != nil {
		return nil, err
	}
	if hotelImage.Valid {
		img := hotelImage.String
		h.Image = &img
	}
	if destImage.Valid {
		img := destImage.String
		dest.Image = &img
	}
	h.Destination = &dest
	return &h, nil
}

// GetAll returns every hotel with its destination resolved.
func (r *HotelRepo) GetAll(ctx context.Context) ([]model.Hotel, error) {
	return r.list(ctx, hotelSelect+` ORDER BY h.id`)
}

// GetByDestinationID returns the hotels located in the given destination.
// The frontend uses this to restrict the hotel choices offered when
// attaching a hotel to a reservation.
func (r *HotelRepo) GetByDestinationID(ctx context.Context, destinationID int64) ([]model.Hotel, error) {
	return r.list(ctx, hotelSelect+` WHERE h.destination_id = ? ORDER BY h.id`, destinationID)
}

func (r *HotelRepo) list(ctx context.Context, query string, args ...any) ([]model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single hotel or ErrNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, id int64) (*model.Hotel, error) {
	row := r.db.QueryRowContext(ctx, hotelSelect+` WHERE h.id = ?`, id)
	h, err := scanHotel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return h, err
}

// Create inserts a hotel and populates the generated ID.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO Hotels (name, destination_id, stars, pricePerNight, image) VALUES (?, ?, ?, ?, ?)`,
		h.Name, h.Destination.ID, h.Stars, h.PricePerNight, nullString(h.Image))
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
	h.ID = id
	return nil
}

// Update replaces all mutable columns of an existing hotel.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE Hotels SET name = ?, destination_id = ?, stars = ?, pricePerNight = ?, image = ? WHERE id = ?`,
		h.Name, h.Destination.ID, h.Stars, h.PricePerNight, nullString(h.Image), h.ID)
	if isFKViolation(err) {
		return ErrNotFound
	}
	return err
}

// Delete removes a hotel.  ErrInUse is returned while reservations still
// reference it.
func (r *HotelRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM Hotels WHERE id = ?`, id)
	if isFKViolation(err) {
		return ErrInUse
	}
	return err
}
