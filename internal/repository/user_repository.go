package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/flightagency/backend/internal/model"
	"github.com/flightagency/backend/internal/utils"
)

// UserRepo provides account persistence and credential verification over
// the `AppUsers` table.  Passwords are stored as bcrypt hashes; the plain
// credential only ever exists in the request that carries it.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, name, email, password, role`

func scanUser(s rowScanner) (*model.AppUser, error) {
	var u model.AppUser
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create hashes the plain password and inserts the user, populating the
// generated ID.  An empty role falls back to PASSENGER.
func (r *UserRepo) Create(ctx context.Context, u *model.AppUser, plainPassword string, cost int) error {
	hash, err := utils.HashPassword(plainPassword, cost)
	if err != nil {
		return err
	}
	role := strings.ToUpper(strings.TrimSpace(u.Role))
	if role != model.RoleAdmin && role != model.RolePassenger {
		role = model.RolePassenger
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO AppUsers (name, email, password, role) VALUES (?, ?, ?, ?)`,
		u.Name, u.Email, hash, role)
	if isDuplicate(err) {
		return ErrEmailExists
	}
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	u.Password = hash
	u.Role = role
	return nil
}

// GetAll returns every user.
func (r *UserRepo) GetAll(ctx context.Context) ([]model.AppUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM AppUsers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AppUser, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single user or ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.AppUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM AppUsers WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches a user by its unique email or returns ErrNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.AppUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM AppUsers WHERE email = ? LIMIT 1`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// VerifyCredentials checks an email/password pair against the stored
// bcrypt hash and returns the matching user.  Both an unknown email and a
// wrong password yield ErrInvalidCredentials so callers cannot probe for
// registered addresses.
func (r *UserRepo) VerifyCredentials(ctx context.Context, email, password string) (*model.AppUser, error) {
	u, err := r.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Update replaces the user's profile fields.  When newPassword is empty
// the stored hash is kept; otherwise the password is rehashed.
func (r *UserRepo) Update(ctx context.Context, u *model.AppUser, newPassword string, cost int) error {
	var err error
	if newPassword == "" {
		_, err = r.db.ExecContext(ctx,
			`UPDATE AppUsers SET name = ?, email = ?, role = ? WHERE id = ?`,
			u.Name, u.Email, u.Role, u.ID)
	} else {
		var hash string
		hash, err = utils.HashPassword(newPassword, cost)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx,
			`UPDATE AppUsers SET name = ?, email = ?, password = ?, role = ? WHERE id = ?`,
			u.Name, u.Email, hash, u.Role, u.ID)
	}
	if isDuplicate(err) {
		return ErrEmailExists
	}
	return err
}

// Delete removes a user.  ErrInUse is returned while reservations still
// reference the account (the schema restricts instead of cascading, so
// reservations are never orphaned silently).
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM AppUsers WHERE id = ?`, id)
	if isFKViolation(err) {
		return ErrInUse
	}
	return err
}
