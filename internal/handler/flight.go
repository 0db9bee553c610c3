package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flightagency/backend/internal/model"
	"github.com/flightagency/backend/internal/repository"
)

// FlightHandler exposes CRUD endpoints for flights under /api/flights,
// plus the by-destination lookup the booking flow starts from.
type FlightHandler struct {
	Flights *repository.FlightRepo
}

// NewFlightHandler constructs the handler; the repository must be non-nil.
func NewFlightHandler(flights *repository.FlightRepo) *FlightHandler {
	if flights == nil {
		panic("nil repository passed to NewFlightHandler")
	}
	return &FlightHandler{Flights: flights}
}

func validFlight(f *model.Flight) (string, bool) {
	if strings.TrimSpace(f.FlightNumber) == "" {
		return "flight number is required", false
	}
	if f.Destination == nil || f.Destination.ID <= 0 {
		return "destination is required", false
	}
	if f.DepartureTime.IsZero() || f.ArrivalTime.IsZero() {
		return "departure and arrival times are required", false
	}
	return "", true
}

// GetAll handles GET /api/flights.
func (h *FlightHandler) GetAll(c echo.Context) error {
	out, err := h.Flights.GetAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// GetByDestination handles GET /api/flights/by-destination/:destinationId.
func (h *FlightHandler) GetByDestination(c echo.Context) error {
	destID, ok := parseID(c, "destinationId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid destination id"})
	}
	out, err := h.Flights.GetByDestinationID(c.Request().Context(), destID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/flights/:id.
func (h *FlightHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	f, err := h.Flights.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, f)
}

// Create handles POST /api/flights.
func (h *FlightHandler) Create(c echo.Context) error {
	var f model.Flight
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := validFlight(&f); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Flights.Create(c.Request().Context(), &f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create flight failed"})
	}
	created, err := h.Flights.GetByID(c.Request().Context(), f.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create flight failed"})
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/flights/%d", created.ID))
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/flights/:id.
func (h *FlightHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	var f model.Flight
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if f.ID != id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body id does not match path id"})
	}
	if msg, ok := validFlight(&f); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.Flights.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Flights.Update(ctx, &f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update flight failed"})
	}
	updated, err := h.Flights.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update flight failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/flights/:id.
func (h *FlightHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Flights.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Flights.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "flight has reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete flight failed"})
	}
	return c.NoContent(http.StatusOK)
}
