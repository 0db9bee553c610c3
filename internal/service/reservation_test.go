package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/flightagency/backend/internal/database"
	"github.com/flightagency/backend/internal/model"
	"github.com/flightagency/backend/internal/queue"
	"github.com/flightagency/backend/internal/repository"
	"github.com/flightagency/backend/internal/service"
)

// recordingPublisher captures published events instead of talking to a broker.
type recordingPublisher struct {
	events []queue.ReservationCreatedEvent
	err    error
}

func (p *recordingPublisher) ReservationCreated(_ context.Context, ev queue.ReservationCreatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

type fixture struct {
	db    *sql.DB
	svc   *service.ReservationService
	pub   *recordingPublisher
	alice *model.AppUser
	af1   *model.Flight
	hotel *model.Hotel
	paris *model.Destination
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open("sqlite3", "file::memory:?_foreign_keys=on",
		database.Options{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema := []string{
		`CREATE TABLE Destinations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			city TEXT NOT NULL, country TEXT NOT NULL,
			description TEXT NOT NULL, image TEXT NULL
		)`,
		`CREATE TABLE Flights (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			flight_number TEXT NOT NULL, departureCity TEXT NULL,
			destination_id INTEGER NOT NULL REFERENCES Destinations (id),
			departureTime DATETIME NOT NULL, arrivalTime DATETIME NOT NULL,
			price REAL NOT NULL DEFAULT 0, seatsAvailable INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE Hotels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			destination_id INTEGER NOT NULL REFERENCES Destinations (id),
			stars INTEGER NOT NULL DEFAULT 1, pricePerNight REAL NOT NULL DEFAULT 0,
			image TEXT NULL
		)`,
		`CREATE TABLE AppUsers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL, email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL, role TEXT NOT NULL DEFAULT 'PASSENGER'
		)`,
		`CREATE TABLE Reservations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES AppUsers (id),
			flight_id INTEGER NOT NULL REFERENCES Flights (id),
			hotel_id INTEGER NULL REFERENCES Hotels (id),
			reservationDate DATETIME NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	ctx := context.Background()
	users := repository.NewUserRepo(db)
	flights := repository.NewFlightRepo(db)
	hotels := repository.NewHotelRepo(db)
	reservations := repository.NewReservationRepo(db)

	paris := &model.Destination{City: "Paris", Country: "France", Description: "Paris trips"}
	if err := repository.NewDestinationRepo(db).Create(ctx, paris); err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	alice := &model.AppUser{Name: "Alice", Email: "alice@test.com"}
	if err := users.Create(ctx, alice, "s3cret-pass", 4); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	dep := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	af1 := &model.Flight{
		FlightNumber: "AF1", Destination: paris,
		DepartureTime: dep, ArrivalTime: dep.Add(2 * time.Hour),
		Price: 199.99, SeatsAvailable: 180,
	}
	if err := flights.Create(ctx, af1); err != nil {
		t.Fatalf("seed flight: %v", err)
	}
	hotel := &model.Hotel{Name: "Hotel Lumiere", Destination: paris, Stars: 4, PricePerNight: 120}
	if err := hotels.Create(ctx, hotel); err != nil {
		t.Fatalf("seed hotel: %v", err)
	}

	pub := &recordingPublisher{}
	return &fixture{
		db:    db,
		svc:   service.NewReservationService(users, flights, hotels, reservations, pub),
		pub:   pub,
		alice: alice,
		af1:   af1,
		hotel: hotel,
		paris: paris,
	}
}

func reservationDate() time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
}

func TestCreateWithoutHotel(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, &model.Reservation{
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: fx.af1.ID},
		ReservationDate: reservationDate(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Hotel != nil {
		t.Errorf("hotel = %+v, want nil", created.Hotel)
	}
	if created.User.Email != "alice@test.com" || created.Flight.FlightNumber != "AF1" {
		t.Errorf("references not resolved: %+v", created)
	}
	if len(fx.pub.events) != 1 {
		t.Fatalf("published events = %d, want 1", len(fx.pub.events))
	}
	ev := fx.pub.events[0]
	if ev.ReservationID != created.ID || ev.HotelID != nil {
		t.Errorf("event = %+v, want reservation %d without hotel", ev, created.ID)
	}
}

func TestCreateSeatsUntouched(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if _, err := fx.svc.Create(ctx, &model.Reservation{
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: fx.af1.ID},
		ReservationDate: reservationDate(),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	f, err := repository.NewFlightRepo(fx.db).GetByID(ctx, fx.af1.ID)
	if err != nil {
		t.Fatalf("get flight: %v", err)
	}
	if f.SeatsAvailable != 180 {
		t.Fatalf("seatsAvailable = %d, want 180 (bookings never decrement)", f.SeatsAvailable)
	}
}

func TestCreateMissingFields(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		res  *model.Reservation
	}{
		{"no user", &model.Reservation{Flight: &model.Flight{ID: fx.af1.ID}, ReservationDate: reservationDate()}},
		{"no flight", &model.Reservation{User: &model.AppUser{ID: fx.alice.ID}, ReservationDate: reservationDate()}},
		{"no date", &model.Reservation{User: &model.AppUser{ID: fx.alice.ID}, Flight: &model.Flight{ID: fx.af1.ID}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.svc.Create(ctx, tc.res)
			if !service.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if err.Error() != "user, flight, and reservation date are required" {
				t.Errorf("message = %q", err.Error())
			}
		})
	}

	// Nothing was persisted.
	all, err := fx.svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("reservations persisted by invalid requests: %d", len(all))
	}
}

func TestCreateUnknownReferences(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Create(ctx, &model.Reservation{
		User:            &model.AppUser{ID: 999},
		Flight:          &model.Flight{ID: fx.af1.ID},
		ReservationDate: reservationDate(),
	})
	if !service.IsValidation(err) {
		t.Fatalf("unknown user: err = %v, want validation error", err)
	}

	_, err = fx.svc.Create(ctx, &model.Reservation{
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: 999},
		ReservationDate: reservationDate(),
	})
	if !service.IsValidation(err) {
		t.Fatalf("unknown flight: err = %v, want validation error", err)
	}

	_, err = fx.svc.Create(ctx, &model.Reservation{
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: fx.af1.ID},
		Hotel:           &model.Hotel{ID: 999},
		ReservationDate: reservationDate(),
	})
	if !service.IsValidation(err) {
		t.Fatalf("unknown hotel: err = %v, want validation error", err)
	}
	if len(fx.pub.events) != 0 {
		t.Fatalf("events published for failed creates: %d", len(fx.pub.events))
	}
}

func TestAttachHotelViaUpdate(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, &model.Reservation{
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: fx.af1.ID},
		ReservationDate: reservationDate(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := fx.svc.Update(ctx, &model.Reservation{
		ID:              created.ID,
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: fx.af1.ID},
		Hotel:           &model.Hotel{ID: fx.hotel.ID},
		ReservationDate: created.ReservationDate,
	})
	if err != nil {
		t.Fatalf("attach hotel: %v", err)
	}
	if updated.Hotel == nil || updated.Hotel.ID != fx.hotel.ID {
		t.Fatalf("hotel not attached: %+v", updated.Hotel)
	}
	if updated.User.ID != fx.alice.ID || updated.Flight.ID != fx.af1.ID {
		t.Errorf("user/flight changed by attach: %+v", updated)
	}
	if !updated.ReservationDate.Equal(created.ReservationDate) {
		t.Errorf("date changed by attach: %v != %v", updated.ReservationDate, created.ReservationDate)
	}
}

func TestUpdateUnknownReservation(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Update(context.Background(), &model.Reservation{
		ID:              999,
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: fx.af1.ID},
		ReservationDate: reservationDate(),
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTwice(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	created, err := fx.svc.Create(ctx, &model.Reservation{
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: fx.af1.ID},
		ReservationDate: reservationDate(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := fx.svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := fx.svc.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestListByUserEmailRequiresEmail(t *testing.T) {
	fx := newFixture(t)
	if _, err := fx.svc.ListByUserEmail(context.Background(), "  "); !service.IsValidation(err) {
		t.Fatalf("blank email: err = %v, want validation error", err)
	}
}

func TestPublishFailureDoesNotFailCreate(t *testing.T) {
	fx := newFixture(t)
	fx.pub.err = errors.New("broker down")

	created, err := fx.svc.Create(context.Background(), &model.Reservation{
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: fx.af1.ID},
		ReservationDate: reservationDate(),
	})
	if err != nil {
		t.Fatalf("create with failing publisher: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("reservation not persisted")
	}
}

func TestNilPublisher(t *testing.T) {
	fx := newFixture(t)
	svc := service.NewReservationService(
		repository.NewUserRepo(fx.db),
		repository.NewFlightRepo(fx.db),
		repository.NewHotelRepo(fx.db),
		repository.NewReservationRepo(fx.db),
		nil,
	)
	if _, err := svc.Create(context.Background(), &model.Reservation{
		User:            &model.AppUser{ID: fx.alice.ID},
		Flight:          &model.Flight{ID: fx.af1.ID},
		ReservationDate: reservationDate(),
	}); err != nil {
		t.Fatalf("create without publisher: %v", err)
	}
}
