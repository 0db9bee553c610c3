// Shared helpers for repository tests.  Uses an in-memory SQLite database
// with foreign keys enforced; no external services required.
//
// Run:  go test ./internal/repository/... -v -race
package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/flightagency/backend/internal/database"
	"github.com/flightagency/backend/internal/model"
	"github.com/flightagency/backend/internal/repository"
)

const testBcryptCost = 4

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	// MaxOpenConns: 1 keeps every statement on the single shared in-memory
	// connection.
	db, err := database.Open("sqlite3", "file::memory:?_foreign_keys=on",
		database.Options{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema := []string{
		`CREATE TABLE Destinations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			city        TEXT NOT NULL,
			country     TEXT NOT NULL,
			description TEXT NOT NULL,
			image       TEXT NULL
		)`,
		`CREATE TABLE Flights (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			flight_number  TEXT NOT NULL,
			departureCity  TEXT NULL,
			destination_id INTEGER NOT NULL REFERENCES Destinations (id),
			departureTime  DATETIME NOT NULL,
			arrivalTime    DATETIME NOT NULL,
			price          REAL NOT NULL DEFAULT 0,
			seatsAvailable INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE Hotels (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			name           TEXT NOT NULL,
			destination_id INTEGER NOT NULL REFERENCES Destinations (id),
			stars          INTEGER NOT NULL DEFAULT 1,
			pricePerNight  REAL NOT NULL DEFAULT 0,
			image          TEXT NULL
		)`,
		`CREATE TABLE AppUsers (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT NOT NULL,
			email    TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role     TEXT NOT NULL DEFAULT 'PASSENGER'
		)`,
		`CREATE TABLE Reservations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id         INTEGER NOT NULL REFERENCES AppUsers (id),
			flight_id       INTEGER NOT NULL REFERENCES Flights (id),
			hotel_id        INTEGER NULL REFERENCES Hotels (id),
			reservationDate DATETIME NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func seedDestination(t *testing.T, db *sql.DB, city, country string) *model.Destination {
	t.Helper()
	d := &model.Destination{City: city, Country: country, Description: city + " trips"}
	if err := repository.NewDestinationRepo(db).Create(context.Background(), d); err != nil {
		t.Fatalf("seed destination %s: %v", city, err)
	}
	return d
}

func seedUser(t *testing.T, db *sql.DB, name, email string) *model.AppUser {
	t.Helper()
	u := &model.AppUser{Name: name, Email: email}
	if err := repository.NewUserRepo(db).Create(context.Background(), u, "s3cret-pass", testBcryptCost); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func seedFlight(t *testing.T, db *sql.DB, number string, dest *model.Destination) *model.Flight {
	t.Helper()
	dep := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	f := &model.Flight{
		FlightNumber:   number,
		Destination:    dest,
		DepartureTime:  dep,
		ArrivalTime:    dep.Add(2 * time.Hour),
		Price:          199.99,
		SeatsAvailable: 180,
	}
	if err := repository.NewFlightRepo(db).Create(context.Background(), f); err != nil {
		t.Fatalf("seed flight %s: %v", number, err)
	}
	return f
}

func seedHotel(t *testing.T, db *sql.DB, name string, dest *model.Destination) *model.Hotel {
	t.Helper()
	h := &model.Hotel{Name: name, Destination: dest, Stars: 4, PricePerNight: 120}
	if err := repository.NewHotelRepo(db).Create(context.Background(), h); err != nil {
		t.Fatalf("seed hotel %s: %v", name, err)
	}
	return h
}
