package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flightagency/backend/internal/model"
	"github.com/flightagency/backend/internal/repository"
	"github.com/flightagency/backend/internal/service"
)

// ReservationHandler exposes the reservation endpoints under
// /api/reservations.  All business rules live in the service; this layer
// only binds requests and maps errors onto status codes.
type ReservationHandler struct {
	Service *service.ReservationService
}

// NewReservationHandler constructs the handler; the service must be non-nil.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Service: svc}
}

// fail translates service and repository errors into responses.
// Validation failures are 400 with the message, a missing reservation is
// 404, and everything else is a generic 500 that never leaks internals.
func fail(c echo.Context, err error) error {
	if service.IsValidation(err) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// GetAll handles GET /api/reservations.
func (h *ReservationHandler) GetAll(c echo.Context) error {
	out, err := h.Service.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ByUserEmail handles POST /api/reservations/by-user-email.
func (h *ReservationHandler) ByUserEmail(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	out, err := h.Service.ListByUserEmail(c.Request().Context(), req.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ByDestination handles GET /api/reservations/by-destination/:destinationId.
func (h *ReservationHandler) ByDestination(c echo.Context) error {
	destID, ok := parseID(c, "destinationId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid destination id"})
	}
	out, err := h.Service.ListByDestinationID(c.Request().Context(), destID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	var res model.Reservation
	if err := c.Bind(&res); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	created, err := h.Service.Create(c.Request().Context(), &res)
	if err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/reservations/%d", created.ID))
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/reservations/:id.  The body must carry the same
// id as the path.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var res model.Reservation
	if err := c.Bind(&res); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if res.ID != id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body id does not match path id"})
	}
	updated, err := h.Service.Update(c.Request().Context(), &res)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/reservations/:id.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusOK)
}
