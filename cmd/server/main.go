package main // Entry point package

import (
    "log" // startup logging

    "github.com/joho/godotenv"    // optional .env loading for local development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/measaura/netlify-pond-booking-sub001/internal/cache"
    "github.com/measaura/netlify-pond-booking-sub001/internal/config"
    "github.com/measaura/netlify-pond-booking-sub001/internal/database"
    "github.com/measaura/netlify-pond-booking-sub001/internal/handler"
    "github.com/measaura/netlify-pond-booking-sub001/internal/queue"
    "github.com/measaura/netlify-pond-booking-sub001/internal/repository"
    "github.com/measaura/netlify-pond-booking-sub001/internal/router"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments use the environment

    cfg := config.Load()
    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    rdb := config.NewRedisClient() // nil when Redis is not configured; features degrade

    // Repositories.
    userRepo := repository.NewUserRepo(db)
    pondRepo := repository.NewPondRepo(db)
    eventRepo := repository.NewEventRepo(db)
    bookingRepo := repository.NewBookingRepo(db)
    seatRepo := repository.NewSeatRepo(db)
    checkInRepo := repository.NewCheckInRepo(db)
    rodRepo := repository.NewRodRepo(db)
    catchRepo := repository.NewCatchRepo(db)
    statsRepo := repository.NewStatsRepo(db)
    deviceRepo := repository.NewDeviceRepo(db)

    lbCache := cache.NewLeaderboardCache(config.LoadLeaderboardCacheConfig(), rdb)

    // Handlers.
    bookingH := handler.NewBookingHandler(bookingRepo, seatRepo, pondRepo, eventRepo, userRepo)
    checkInH := handler.NewCheckInHandler(seatRepo, checkInRepo, cfg.RodQRPrefix)
    rodH := handler.NewRodHandler(seatRepo, rodRepo, cfg.RodQRPrefix)
    weighingH := handler.NewWeighingHandler(rodRepo, eventRepo, catchRepo, statsRepo, lbCache, cfg.RodQRPrefix)
    leaderboardH := handler.NewLeaderboardHandler(catchRepo, userRepo, lbCache)
    webhookH := handler.NewWebhookHandler(deviceRepo)

    // Notification consumer writes welcome/catch/achievement messages
    // to the notification log; it reconnects on broker loss.
    go func() {
        if err := queue.StartNotificationConsumer(); err != nil {
            log.Printf("notification consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    router.RegisterRoutes(e, leaderboardH, webhookH)
    router.RegisterAngler(e, bookingH, cfg.JWTSecret)
    router.RegisterStations(e, checkInH, rodH, weighingH, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
