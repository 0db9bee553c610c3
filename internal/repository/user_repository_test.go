package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flightagency/backend/internal/model"
	"github.com/flightagency/backend/internal/repository"
)

func TestUserCreateHashesPassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepo(db)

	u := &model.AppUser{Name: "Alice", Email: "alice@test.com"}
	if err := repo.Create(ctx, u, "s3cret-pass", testBcryptCost); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("id not populated after create")
	}
	if u.Role != model.RolePassenger {
		t.Errorf("role = %q, want %q", u.Role, model.RolePassenger)
	}

	stored, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.Password == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepo(db)

	seedUser(t, db, "Alice", "alice@test.com")
	err := repo.Create(ctx, &model.AppUser{Name: "Imposter", Email: "alice@test.com"}, "other-pass", testBcryptCost)
	if !errors.Is(err, repository.ErrEmailExists) {
		t.Fatalf("duplicate email: err = %v, want ErrEmailExists", err)
	}
}

func TestUserVerifyCredentials(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepo(db)

	seedUser(t, db, "Alice", "alice@test.com")

	u, err := repo.VerifyCredentials(ctx, "alice@test.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("verify with correct password: %v", err)
	}
	if u.Email != "alice@test.com" {
		t.Errorf("email = %q, want alice@test.com", u.Email)
	}

	if _, err := repo.VerifyCredentials(ctx, "alice@test.com", "wrong"); !errors.Is(err, repository.ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := repo.VerifyCredentials(ctx, "nobody@test.com", "s3cret-pass"); !errors.Is(err, repository.ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepo(db)

	u := seedUser(t, db, "Alice", "alice@test.com")

	u.Name = "Alice Renamed"
	if err := repo.Update(ctx, u, "", testBcryptCost); err != nil {
		t.Fatalf("update without password: %v", err)
	}
	if _, err := repo.VerifyCredentials(ctx, "alice@test.com", "s3cret-pass"); err != nil {
		t.Fatalf("old password rejected after profile update: %v", err)
	}

	if err := repo.Update(ctx, u, "new-pass-123", testBcryptCost); err != nil {
		t.Fatalf("update with password: %v", err)
	}
	if _, err := repo.VerifyCredentials(ctx, "alice@test.com", "new-pass-123"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
	if _, err := repo.VerifyCredentials(ctx, "alice@test.com", "s3cret-pass"); !errors.Is(err, repository.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted after change: err = %v", err)
	}
}

func TestUserDeleteWithReservations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	paris := seedDestination(t, db, "Paris", "France")
	alice := seedUser(t, db, "Alice", "alice@test.com")
	flight := seedFlight(t, db, "AF1", paris)
	if _, err := repository.NewReservationRepo(db).Create(ctx, alice.ID, flight.ID, nil, time.Now().UTC()); err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	repo := repository.NewUserRepo(db)
	if err := repo.Delete(ctx, alice.ID); !errors.Is(err, repository.ErrInUse) {
		t.Fatalf("delete user with reservations: err = %v, want ErrInUse", err)
	}
}
