package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flightagency/backend/internal/model"
)

// DestinationRepo provides CRUD operations for destinations.  Destinations
// are independent entities referenced by flights and hotels, so deletes
// can fail with ErrInUse while references remain.
type DestinationRepo struct {
	db *sql.DB
}

// NewDestinationRepo returns a new DestinationRepo bound to the given database.
func NewDestinationRepo(db *sql.DB) *DestinationRepo { return &DestinationRepo{db: db} }

// rowScanner abstracts *sql.Row and *sql.Rows so mapping helpers can be
// shared between single- and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

const destinationColumns = `id, city, country, description, image`

func scanDestination(s rowScanner) (*model.Destination, error) {
	var d model.Destination
	var image sql.NullString
	if err := s.Scan(&d.ID, &d.City, &d.Country, &d.Description, &image); err != nil {
		return nil, err
	}
	if image.Valid {
		img := image.String
		d.Image = &img
	}
	return &d, nil
}

// GetAll returns every destination.  Row order follows the primary key so
// listings are deterministic.
func (r *DestinationRepo) GetAll(ctx context.Context) ([]model.Destination, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+destinationColumns+` FROM Destinations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single destination or ErrNotFound.
func (r *DestinationRepo) GetByID(ctx context.Context, id int64) (*model.Destination, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+destinationColumns+` FROM Destinations WHERE id = ?`, id)
	d, err := scanDestination(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return d, err
}

// Create inserts a destination and populates the generated ID.
func (r *DestinationRepo) Create(ctx context.Context, d *model.Destination) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO Destinations (city, country, description, image) VALUES (?, ?, ?, ?)`,
		d.City, d.Country, d.Description, nullString(d.Image))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

// Update replaces all mutable columns of an existing destination.
func (r *DestinationRepo) Update(ctx context.Context, d *model.Destination) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE Destinations SET city = ?, country = ?, description = ?, image = ? WHERE id = ?`,
		d.City, d.Country, d.Description, nullString(d.Image), d.ID)
	return err
}

// Delete removes a destination.  ErrInUse is returned while flights or
// hotels still reference it.
func (r *DestinationRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM Destinations WHERE id = ?`, id)
	if isFKViolation(err) {
		return ErrInUse
	}
	return err
}

// nullString converts an optional string into a driver-friendly value.
func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
