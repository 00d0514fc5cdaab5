package router

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/measaura/netlify-pond-booking-sub001/internal/config"
    "github.com/measaura/netlify-pond-booking-sub001/internal/handler"
    "github.com/measaura/netlify-pond-booking-sub001/internal/middleware"
)

// RegisterStations registers the endpoints operated from venue
// stations: gate check-in, rod printing and catch weighing.  All
// routes require a STAFF or ADMIN token.  Scans are rate limited per
// operator so a jammed scanner cannot flood the database.
func RegisterStations(e *echo.Echo, ci *handler.CheckInHandler, rod *handler.RodHandler, w *handler.WeighingHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("STAFF", "ADMIN"),
        middleware.NewTokenBucket(rlCfg, rdb),
    )

    g.POST("/checkins/scan", ci.Scan)

    g.POST("/rod-printing/print", rod.Print)
    g.GET("/rods/:qr", rod.Get)
    g.GET("/rods/:qr/history", rod.History)

    g.POST("/weighing/record", w.Record)
}
