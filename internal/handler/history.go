package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/eventscout/internal/middleware"
	"github.com/iliyamo/eventscout/internal/repository"
)

// HistoryHandler exposes the caller's recent searches.
type HistoryHandler struct {
	Logs *repository.SearchLogRepo
}

// Recent answers GET /v1/history?limit=N with the caller's latest
// searches, newest first.  When history is disabled the list is empty
// rather than an error.
func (h *HistoryHandler) Recent(c echo.Context) error {
	if h.Logs == nil {
		return c.JSON(http.StatusOK, echo.Map{"items": []repository.SearchLogEntry{}})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, err := h.Logs.Recent(c.Request().Context(), middleware.Sender(c), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
