package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/flightagency/backend/internal/model"
	"github.com/flightagency/backend/internal/queue"
	"github.com/flightagency/backend/internal/repository"
)

// ValidationError reports a request that fails the reservation
// preconditions: a missing required field or a reference to an entity
// that does not exist.  Handlers translate it into an HTTP 400 response
// carrying the message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ReservationService validates and persists reservations.  A reservation
// always carries exactly one user and one flight; the hotel leg is
// optional and may be attached after creation through Update.  Referenced
// entities are pre-checked explicitly so callers get a clean validation
// message instead of an opaque foreign-key failure, but the check and the
// insert are not atomic; a row deleted in between still fails on the
// constraint and is surfaced the same way.
//
// Two behaviors are inherited from the booking model on purpose:
//
//   - Creating or deleting a reservation never touches the flight's
//     seatsAvailable figure; there is no stock management anywhere.
//   - Update does not require the hotel's destination to match the
//     flight's destination.  The hotel picker in the frontend only offers
//     same-destination hotels, but the backend accepts any hotel.
type ReservationService struct {
	Users        *repository.UserRepo
	Flights      *repository.FlightRepo
	Hotels       *repository.HotelRepo
	Reservations *repository.ReservationRepo
	Publisher    EventPublisher // optional; nil disables events
}

// NewReservationService constructs the service.  The repositories must be
// non-nil; the publisher may be nil.
func NewReservationService(users *repository.UserRepo, flights *repository.FlightRepo, hotels *repository.HotelRepo, reservations *repository.ReservationRepo, pub EventPublisher) *ReservationService {
	if users == nil || flights == nil || hotels == nil || reservations == nil {
		panic("nil repository passed to NewReservationService")
	}
	return &ReservationService{
		Users:        users,
		Flights:      flights,
		Hotels:       hotels,
		Reservations: reservations,
		Publisher:    pub,
	}
}

// validate applies the combined precondition check shared by Create and
// Update: user reference, flight reference and reservation date are all
// required; the hotel reference, when present, must be positive.
func (s *ReservationService) validate(res *model.Reservation) error {
	if res == nil || res.User == nil || res.User.ID <= 0 ||
		res.Flight == nil || res.Flight.ID <= 0 ||
		res.ReservationDate.IsZero() {
		return invalid("user, flight, and reservation date are required")
	}
	if res.Hotel != nil && res.Hotel.ID <= 0 {
		return invalid("hotel reference must be a positive id")
	}
	return nil
}

// checkReferences verifies that every referenced entity exists.  Misses
// come back as validation errors naming the entity.
func (s *ReservationService) checkReferences(ctx context.Context, res *model.Reservation) error {
	if _, err := s.Users.GetByID(ctx, res.User.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("user %d does not exist", res.User.ID)
		}
		return err
	}
	if _, err := s.Flights.GetByID(ctx, res.Flight.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("flight %d does not exist", res.Flight.ID)
		}
		return err
	}
	if res.Hotel != nil {
		if _, err := s.Hotels.GetByID(ctx, res.Hotel.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return invalid("hotel %d does not exist", res.Hotel.ID)
			}
			return err
		}
	}
	return nil
}

// Create validates and persists a new reservation and returns it fully
// resolved.  On success a reservation.created event is published
// fire-and-forget; a broker failure never fails the request.
func (s *ReservationService) Create(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	if err := s.validate(res); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, res); err != nil {
		return nil, err
	}
	var hotelID *int64
	if res.Hotel != nil {
		hotelID = &res.Hotel.ID
	}
	id, err := s.Reservations.Create(ctx, res.User.ID, res.Flight.ID, hotelID, res.ReservationDate)
	if errors.Is(err, repository.ErrNotFound) {
		// lost the race with a concurrent delete of a referenced row
		return nil, invalid("referenced entity no longer exists")
	}
	if err != nil {
		return nil, err
	}
	created, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publishCreated(ctx, created)
	return created, nil
}

// Get returns a fully resolved reservation or repository.ErrNotFound.
func (s *ReservationService) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	return s.Reservations.GetByID(ctx, id)
}

// List returns all reservations.
func (s *ReservationService) List(ctx context.Context) ([]model.Reservation, error) {
	return s.Reservations.GetAll(ctx)
}

// ListByUserEmail returns the reservations owned by the user with the
// given email.  An empty email is a validation error; an email with no
// matching user yields an empty list.
func (s *ReservationService) ListByUserEmail(ctx context.Context, email string) ([]model.Reservation, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("email is required")
	}
	return s.Reservations.GetByUserEmail(ctx, email)
}

// ListByDestinationID returns the reservations touching the destination
// on either leg (arriving flight or attached hotel).
func (s *ReservationService) ListByDestinationID(ctx context.Context, destinationID int64) ([]model.Reservation, error) {
	if destinationID <= 0 {
		return nil, invalid("destination id must be greater than 0")
	}
	return s.Reservations.GetByDestinationID(ctx, destinationID)
}

// Update replaces the associable fields of an existing reservation under
// the same validation as Create.  repository.ErrNotFound is returned when
// the reservation itself does not exist.  Attaching a hotel is an Update
// with the hotel reference set and everything else unchanged.
func (s *ReservationService) Update(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	if err := s.validate(res); err != nil {
		return nil, err
	}
	if _, err := s.Reservations.GetByID(ctx, res.ID); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, res); err != nil {
		return nil, err
	}
	var hotelID *int64
	if res.Hotel != nil {
		hotelID = &res.Hotel.ID
	}
	err := s.Reservations.Update(ctx, res.ID, res.User.ID, res.Flight.ID, hotelID, res.ReservationDate)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("referenced entity no longer exists")
	}
	if err != nil {
		return nil, err
	}
	return s.Reservations.GetByID(ctx, res.ID)
}

// Delete removes a reservation.  The existence check runs first so a
// second delete of the same id reports repository.ErrNotFound.  Deleting
// has no side effects on the flight's seat count.
func (s *ReservationService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Reservations.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Reservations.Delete(ctx, id)
}

func (s *ReservationService) publishCreated(ctx context.Context, res *model.Reservation) {
	if s.Publisher == nil {
		return
	}
	ev := queue.ReservationCreatedEvent{
		ReservationID:   res.ID,
		UserID:          res.User.ID,
		UserEmail:       res.User.Email,
		FlightID:        res.Flight.ID,
		FlightNumber:    res.Flight.FlightNumber,
		DestinationCity: res.Flight.Destination.City,
		ReservationDate: res.ReservationDate.UTC().Format(time.RFC3339),
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if res.Hotel != nil {
		ev.HotelID = &res.Hotel.ID
		ev.HotelName = &res.Hotel.Name
	}
	if err := s.Publisher.ReservationCreated(ctx, ev); err != nil {
		log.Printf("reservation %d created, event publish failed: %v", res.ID, err)
	}
}
