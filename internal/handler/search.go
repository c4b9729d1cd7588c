package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/eventscout/internal/middleware"
	"github.com/iliyamo/eventscout/internal/repository"
	"github.com/iliyamo/eventscout/internal/search"
)

// SearchHandler serves the event search endpoint.  Logs and Prefs may be
// nil; the handler then skips history and city memory.
type SearchHandler struct {
	Resolver *search.Resolver
	Logs     *repository.SearchLogRepo
	Prefs    *repository.PreferenceRepo
}

// Search answers GET /v1/search?q=<query>[&city=<hint>].  When no city is
// given, the sender's remembered city (if any) is used as the location
// hint.  The response mirrors the resolver result; there is no error
// case beyond a missing query.
func (h *SearchHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing query parameter q"})
	}
	ctx := c.Request().Context()
	sender := middleware.Sender(c)

	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" && h.Prefs != nil {
		remembered, err := h.Prefs.City(ctx, sender)
		if err != nil {
			log.Printf("search: city lookup for %s failed: %v", sender, err)
		}
		city = remembered
	}

	res := h.Resolver.Resolve(ctx, q, city)

	if h.Logs != nil {
		// History is best effort and must not delay the response.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := h.Logs.Insert(ctx, sender, q, string(res.Strategy), len(res.Events)); err != nil {
				log.Printf("search: history insert failed: %v", err)
			}
		}()
	}
	return c.JSON(http.StatusOK, res)
}
