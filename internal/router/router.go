// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/handler"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
)

// Deps is everything the routes need.  Redis may be nil: the response cache
// and the rate limiter then pass requests through.
type Deps struct {
	Catalogue *handler.CatalogueHandler
	Booking   *handler.BookingHandler
	Validator *handler.Validator
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Debug     bool
	Log       *zap.Logger
}

// New builds the Echo instance serving the whole API.
func New(d Deps) *echo.Echo {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Validator == nil {
		d.Validator = handler.NewValidator(nil)
	}
	e := echo.New()
	e.HideBanner = true
	e.Validator = d.Validator
	e.Use(echomw.Recover())
	e.Use(middleware.BrowserID())
	e.Use(middleware.RequestLogger(d.Log))

	RegisterRoutes(e)
	RegisterCatalogue(e, d.Catalogue, middleware.NewRedisCache(d.Cache, d.Redis, d.Log))
	RegisterBooking(e, d.Booking, middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log), d.Debug)
	return e
}

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalogue registers the film list endpoints.  Everything but the
// header goes through the response cache; the header depends on the visitor's
// parameters and is cheap.
func RegisterCatalogue(e *echo.Echo, h *handler.CatalogueHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.GET("/films", h.ListFilms, cache)
	g.GET("/genres", h.ListGenres, cache)
	g.GET("/trailer", h.Trailer, cache)
	g.GET("/header", h.Header)
}

// RegisterBooking registers the booking steps.  Only seat toggles are rate
// limited: they are the one endpoint a script could hammer.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, limiter echo.MiddlewareFunc, debug bool) {
	g := e.Group("/v1")
	g.GET("/seats", h.GetSeats)
	g.POST("/seats/toggle", h.ToggleSeat, limiter)
	g.POST("/seats/reserve", h.Reserve)

	g.GET("/fares", h.GetFares)
	g.POST("/fares", h.UpdateFares)

	g.GET("/snacks", h.GetSnacks)
	g.POST("/snacks/cart", h.UpdateCart)

	g.POST("/payment", h.Pay)
	g.GET("/ticket", h.Ticket)
	g.POST("/reset", h.Reset)

	g.GET("/debug/bookings", h.DebugBookings, middleware.DebugOnly(debug))
}
