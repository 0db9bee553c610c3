package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// parseID extracts a positive numeric path parameter.  The second return
// value is false when the parameter is missing, non-numeric or not
// positive.
func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Validator adapts go-playground/validator to echo's Validator interface
// so handlers can run struct-tag validation via c.Validate.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds the validator used by every request DTO.
func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

// Validate implements echo.Validator.  Tag violations surface as a 400
// with the validator's message.
func (cv *Validator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
