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

// HotelHandler exposes CRUD endpoints for hotels under /api/hotels.
type HotelHandler struct {
	Hotels *repository.HotelRepo
}

// NewHotelHandler constructs the handler; the repository must be non-nil.
func NewHotelHandler(hotels *repository.HotelRepo) *HotelHandler {
	if hotels == nil {
		panic("nil repository passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels}
}

func validHotel(h *model.Hotel) (string, bool) {
	if strings.TrimSpace(h.Name) == "" {
		return "hotel name is required", false
	}
	if h.Destination == nil || h.Destination.ID <= 0 {
		return "destination is required", false
	}
	if h.Stars < 1 || h.Stars > 5 {
		return "stars must be between 1 and 5", false
	}
	return "", true
}

// GetAll handles GET /api/hotels.
func (h *HotelHandler) GetAll(c echo.Context) error {
	out, err := h.Hotels.GetAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// GetByDestination handles GET /api/hotels/by-destination/:destinationId.
func (h *HotelHandler) GetByDestination(c echo.Context) error {
	destID, ok := parseID(c, "destinationId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid destination id"})
	}
	out, err := h.Hotels.GetByDestinationID(c.Request().Context(), destID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/hotels/:id.
func (h *HotelHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	out, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/hotels.
func (h *HotelHandler) Create(c echo.Context) error {
	var m model.Hotel
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := validHotel(&m); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Hotels.Create(c.Request().Context(), &m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
	}
	created, err := h.Hotels.GetByID(c.Request().Context(), m.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/hotels/%d", created.ID))
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/hotels/:id.
func (h *HotelHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	var m model.Hotel
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if m.ID != id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body id does not match path id"})
	}
	if msg, ok := validHotel(&m); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Hotels.Update(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hotel failed"})
	}
	updated, err := h.Hotels.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hotel failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/hotels/:id.
func (h *HotelHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Hotels.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Hotels.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel has reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete hotel failed"})
	}
	return c.NoContent(http.StatusOK)
}
