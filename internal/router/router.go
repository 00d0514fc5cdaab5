package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/measaura/netlify-pond-booking-sub001/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check, the public leaderboards shown
// on venue displays, and the device status webhook used by station
// hardware that carries no user identity.
func RegisterRoutes(e *echo.Echo, lb *handler.LeaderboardHandler, wh *handler.WebhookHandler) {
    // Load balancers and monitoring probe this endpoint.
    e.GET("/healthz", handler.Health)

    // Leaderboards are public by design: venue displays and spectator
    // phones read them without accounts.
    e.GET("/v1/leaderboard/overall", lb.Overall)
    e.GET("/v1/leaderboard/event", lb.Event)

    // Gate scanners, printers and scales report status here.
    e.POST("/v1/webhooks/devices", wh.Receive)
}
