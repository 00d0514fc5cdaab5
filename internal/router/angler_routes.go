package router

import (
    "github.com/labstack/echo/v4"

    "github.com/measaura/netlify-pond-booking-sub001/internal/handler"
    "github.com/measaura/netlify-pond-booking-sub001/internal/middleware"
)

// RegisterAngler registers booking endpoints under /v1.  All routes
// require a valid JWT; any role may book, and ownership checks happen
// in the handlers so staff can act on behalf of an angler.
func RegisterAngler(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ANGLER", "STAFF", "ADMIN"),
    )
    g.POST("/bookings", h.CreateBooking)
    g.GET("/bookings/:id", h.GetBooking)
    g.DELETE("/bookings/:id", h.CancelBooking)
    g.POST("/bookings/:id/seats/share", h.ShareSeat)
    g.GET("/my-bookings", h.ListMyBookings)
}
