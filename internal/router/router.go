package router // package router wires HTTP routes to handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/eventscout/internal/config"
	"github.com/iliyamo/eventscout/internal/handler"
	"github.com/iliyamo/eventscout/internal/middleware"
)

// Deps collects everything route registration needs.  Redis may be nil;
// the rate-limit and cache middleware then pass requests straight through.
type Deps struct {
	Search    *handler.SearchHandler
	Prefs     *handler.PreferenceHandler
	History   *handler.HistoryHandler
	Redis     *redis.Client
	JWTSecret string
}

// RegisterRoutes registers all endpoints on the provided Echo instance.
// /healthz and /metrics stay open; everything under /v1 goes through
// identity and the inbound rate limiter, and the search route is
// additionally response-cached.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")
	v1.Use(middleware.Identity(d.JWTSecret))
	v1.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis))

	v1.GET("/search", d.Search.Search, middleware.NewResponseCache(config.LoadCacheConfig(), d.Redis))
	v1.GET("/me/city", d.Prefs.GetCity)
	v1.PUT("/me/city", d.Prefs.SetCity)
	v1.DELETE("/me/city", d.Prefs.ClearCity)
	v1.GET("/history", d.History.Recent)
}
