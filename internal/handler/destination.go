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

// DestinationHandler exposes CRUD endpoints for destinations under
// /api/destinations.
type DestinationHandler struct {
	Destinations *repository.DestinationRepo
}

// NewDestinationHandler constructs the handler; the repository must be non-nil.
func NewDestinationHandler(destinations *repository.DestinationRepo) *DestinationHandler {
	if destinations == nil {
		panic("nil repository passed to NewDestinationHandler")
	}
	return &DestinationHandler{Destinations: destinations}
}

// GetAll handles GET /api/destinations.
func (h *DestinationHandler) GetAll(c echo.Context) error {
	out, err := h.Destinations.GetAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/destinations/:id.
func (h *DestinationHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid destination id"})
	}
	d, err := h.Destinations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, d)
}

// Create handles POST /api/destinations.
func (h *DestinationHandler) Create(c echo.Context) error {
	var d model.Destination
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(d.City) == "" || strings.TrimSpace(d.Country) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city and country are required"})
	}
	if err := h.Destinations.Create(c.Request().Context(), &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create destination failed"})
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/destinations/%d", d.ID))
	return c.JSON(http.StatusCreated, d)
}

// Update handles PUT /api/destinations/:id.  The body id must match the
// path id, and the row must already exist.
func (h *DestinationHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid destination id"})
	}
	var d model.Destination
	if err := c.Bind(&d); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if d.ID != id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body id does not match path id"})
	}
	if strings.TrimSpace(d.City) == "" || strings.TrimSpace(d.Country) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city and country are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Destinations.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Destinations.Update(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update destination failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /api/destinations/:id.  Destinations still
// referenced by flights or hotels cannot be deleted.
func (h *DestinationHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid destination id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Destinations.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Destinations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "destination is referenced by flights or hotels"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete destination failed"})
	}
	return c.NoContent(http.StatusOK)
}
