package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/eventscout/internal/middleware"
	"github.com/iliyamo/eventscout/internal/repository"
)

// PreferenceHandler manages the caller's remembered home city.
type PreferenceHandler struct {
	Prefs *repository.PreferenceRepo
}

// GetCity returns the caller's remembered city, empty when none is set.
func (h *PreferenceHandler) GetCity(c echo.Context) error {
	city, err := h.Prefs.City(c.Request().Context(), middleware.Sender(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "preference store error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"city": city})
}

// SetCity remembers the caller's city.  Body: {"city": "Los Angeles"}.
func (h *PreferenceHandler) SetCity(c echo.Context) error {
	var body struct {
		City string `json:"city"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	city := strings.TrimSpace(body.City)
	if city == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city must not be empty"})
	}
	if err := h.Prefs.SetCity(c.Request().Context(), middleware.Sender(c), city); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "preference store error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"city": city})
}

// ClearCity forgets the caller's city.
func (h *PreferenceHandler) ClearCity(c echo.Context) error {
	if err := h.Prefs.ClearCity(c.Request().Context(), middleware.Sender(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "preference store error"})
	}
	return c.NoContent(http.StatusNoContent)
}
