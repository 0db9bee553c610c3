package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/flightagency/backend/internal/config"
	"github.com/flightagency/backend/internal/handler"
	"github.com/flightagency/backend/internal/middleware"
)

// Handlers bundles every handler the API mounts.  main wires the
// dependencies and passes the bundle here so route registration stays in
// one place.
type Handlers struct {
	Destinations *handler.DestinationHandler
	Flights      *handler.FlightHandler
	Hotels       *handler.HotelHandler
	Users        *handler.UserHandler
	Auth         *handler.AuthHandler
	Reservations *handler.ReservationHandler
}

// Register mounts all routes on the provided Echo instance.  Catalog
// reads (destinations, flights, hotels) go through the Redis response
// cache when one is configured; reservation reads stay uncached because
// bookings must be visible immediately after a write.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cache *redis.Client, cacheCfg config.CacheConfig) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")

	cached := middleware.ResponseCache(cache, cacheCfg)

	d := api.Group("/destinations")
	d.GET("", h.Destinations.GetAll, cached)
	d.GET("/:id", h.Destinations.Get, cached)
	d.POST("", h.Destinations.Create)
	d.PUT("/:id", h.Destinations.Update)
	d.DELETE("/:id", h.Destinations.Delete)

	f := api.Group("/flights")
	f.GET("", h.Flights.GetAll, cached)
	f.GET("/by-destination/:destinationId", h.Flights.GetByDestination, cached)
	f.GET("/:id", h.Flights.Get, cached)
	f.POST("", h.Flights.Create)
	f.PUT("/:id", h.Flights.Update)
	f.DELETE("/:id", h.Flights.Delete)

	ho := api.Group("/hotels")
	ho.GET("", h.Hotels.GetAll, cached)
	ho.GET("/by-destination/:destinationId", h.Hotels.GetByDestination, cached)
	ho.GET("/:id", h.Hotels.Get, cached)
	ho.POST("", h.Hotels.Create)
	ho.PUT("/:id", h.Hotels.Update)
	ho.DELETE("/:id", h.Hotels.Delete)

	u := api.Group("/users")
	u.GET("", h.Users.GetAll)
	u.GET("/:id", h.Users.Get)
	u.POST("", h.Users.Create)
	u.POST("/by-email", h.Users.ByEmail)
	u.POST("/login", h.Users.Login)
	u.PUT("/:id", h.Users.Update)
	u.DELETE("/:id", h.Users.Delete)

	r := api.Group("/reservations")
	r.GET("", h.Reservations.GetAll)
	r.GET("/by-destination/:destinationId", h.Reservations.ByDestination)
	r.GET("/:id", h.Reservations.Get)
	r.POST("", h.Reservations.Create)
	r.POST("/by-user-email", h.Reservations.ByUserEmail)
	r.PUT("/:id", h.Reservations.Update)
	r.DELETE("/:id", h.Reservations.Delete)

	auth := api.Group("/auth")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "PASSENGER"))
	auth.GET("/me", h.Auth.Me)
}
