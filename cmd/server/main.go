package main // Entry point package

import (
    "log" // Logging library

    "github.com/joho/godotenv"    // Optional .env loader for local development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/stellarpath/cruise-booking/internal/config"     // Internal config loader
    "github.com/stellarpath/cruise-booking/internal/database"   // MySQL pool and unit of work
    "github.com/stellarpath/cruise-booking/internal/handler"    // HTTP handlers
    "github.com/stellarpath/cruise-booking/internal/middleware" // Cache and rate limit middleware
    "github.com/stellarpath/cruise-booking/internal/queue"      // Lifecycle event consumer
    "github.com/stellarpath/cruise-booking/internal/repository" // DB repositories
    "github.com/stellarpath/cruise-booking/internal/router"     // Route registration
    "github.com/stellarpath/cruise-booking/internal/service"    // Booking core services
    "github.com/stellarpath/cruise-booking/internal/utils"      // Google ID token verification
)

func main() {
    _ = godotenv.Load() // Load .env when present; real env vars win

    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open MySQL pool and verify connectivity
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    uow := database.NewUnitOfWork(db) // Transaction boundary for lifecycle writes

    // Redis backs the response cache and rate limiter; nil disables both.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; cache and rate limiting disabled")
    }

    // Repositories over the shared pool.
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    statuses := repository.NewStatusRepo(db)
    cruises := repository.NewCruiseRepo(db)
    bookings := repository.NewBookingRepo(db)
    history := repository.NewHistoryRepo(db)

    // Booking core services.
    registry := service.NewStatusRegistry(statuses)
    availability := service.NewAvailabilityService(cruises, bookings, registry)
    lifecycle := service.NewBookingService(uow, bookings, history, cruises, registry, cfg.BookingTTL)
    queries := service.NewBookingQueryService(bookings, history, cruises, registry)

    // Handlers.
    verifier := utils.NewGoogleVerifier(cfg.GoogleAudience)
    authH := handler.NewAuthHandler(cfg, users, tokens, verifier)
    cruiseH := handler.NewCruiseHandler(cruises, availability)
    bookingH := handler.NewBookingHandler(lifecycle, queries)
    adminH := handler.NewAdminHandler(lifecycle, queries)

    // Background consumer appends lifecycle events to logs/booking.log.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking-consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, cruiseH, cache)
    router.RegisterBookings(e, bookingH, cfg.JWTSecret)
    router.RegisterAdmin(e, adminH, cfg.JWTSecret)

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
