package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flightagency/backend/internal/repository"
)

// AuthHandler serves the identity endpoint for authenticated callers.
type AuthHandler struct {
	Users *repository.UserRepo
}

// NewAuthHandler constructs the handler; the repository must be non-nil.
func NewAuthHandler(users *repository.UserRepo) *AuthHandler {
	if users == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Users: users}
}

// Me handles GET /api/auth/me. The JWT middleware has already placed the
// caller's id and role in the request context.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, u)
}
