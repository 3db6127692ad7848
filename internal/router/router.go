package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/stellarpath/cruise-booking/internal/handler"    // import the handlers that implement business logic
    "github.com/stellarpath/cruise-booking/internal/middleware" // import middleware for session authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring systems use /healthz to verify that
    // the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth; the authenticated
// profile endpoint lives under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Operations that establish or end a session need no existing one.
    g := e.Group("/v1/auth")
    // Exchange a Google ID token for a session/refresh pair.
    g.POST("/google", a.GoogleLogin)
    // Rotate the refresh token and mint a new pair.
    g.POST("/refresh", a.Refresh)
    // Revoke a refresh token.  The handler accepts a JSON body with a
    // `refresh_token` and invalidates it; no session token is needed.
    g.POST("/logout", a.Logout)

    // The profile endpoint requires a valid session token.
    auth := e.Group("/v1", middleware.SessionAuth(jwtSecret))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// cruise catalogue, cruise detail and seat availability.  cache may be
// a pass-through middleware when Redis is unavailable.
func RegisterPublic(e *echo.Echo, h *handler.CruiseHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1", cache)
    g.GET("/cruises", h.ListCruises)
    g.GET("/cruises/:id", h.GetCruise)
    // Seat availability is derived from capacity minus blocking
    // bookings; guests can check it before signing in.
    g.GET("/cruises/:id/seats", h.GetAvailableSeats)
}

// RegisterBookings registers the traveller-scoped booking endpoints
// under /v1.  All routes require a valid session; ownership checks
// happen in the service layer so admins can act on any booking.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
    g := e.Group("/v1", middleware.SessionAuth(jwtSecret))
    g.GET("/my-bookings", h.ListMy)
    g.GET("/bookings/:id", h.Get)
    g.GET("/bookings/:id/history", h.GetHistory)
    g.POST("/bookings", h.Create)
    g.POST("/bookings/batch", h.CreateBatch)
    g.DELETE("/bookings/:id", h.Cancel)
    g.POST("/bookings/:id/pay", h.Pay)
}

// RegisterAdmin registers the operator endpoints.  All routes require
// a valid session carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.SessionAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )
    g.GET("/admin/bookings", h.SearchBookings)
    g.GET("/admin/booking-history", h.SearchHistory)
    g.GET("/cruises/:id/bookings", h.ListCruiseBookings)
    g.POST("/admin/cruises/:id/cancel", h.CancelCruise)
    g.POST("/admin/cruises/:id/complete", h.CompleteCruiseBookings)
    g.POST("/admin/bookings/expire", h.ExpireBookings)
}
