package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jeycc/festival-booking/internal/config"
	"github.com/jeycc/festival-booking/internal/database"
	"github.com/jeycc/festival-booking/internal/handler"
	"github.com/jeycc/festival-booking/internal/middleware"
	"github.com/jeycc/festival-booking/internal/queue"
	"github.com/jeycc/festival-booking/internal/repository"
	"github.com/jeycc/festival-booking/internal/router"
	queue_publisher "github.com/jeycc/festival-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	clientRepo := repository.NewClientRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	snackRepo := repository.NewSnackRepo(db)
	transportRepo := repository.NewTransportRepo(db)
	ticketRepo := repository.NewTicketRepo(db)

	ticketHandler := handler.NewTicketHandler(ticketRepo, clientRepo, movieRepo, cfg.Transport)
	ticketHandler.Publish = queue_publisher.PublishTicketBooked

	e := echo.New()
	e.HideBanner = true

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response caching and rate limiting disabled")
	}
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, router.Handlers{
		Tickets:    ticketHandler,
		Clients:    handler.NewClientHandler(clientRepo),
		Movies:     handler.NewMovieHandler(movieRepo, ticketRepo),
		Snacks:     handler.NewSnackHandler(snackRepo),
		Transports: handler.NewTransportHandler(transportRepo),
	}, middleware.ResponseCache(config.LoadCacheConfig(), rdb))

	// Background consumer that appends booked tickets to logs/booking.log.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
