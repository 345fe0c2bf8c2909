package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/guest-hub/internal/config"
	"github.com/iliyamo/guest-hub/internal/conversation"
	"github.com/iliyamo/guest-hub/internal/database"
	"github.com/iliyamo/guest-hub/internal/handler"
	"github.com/iliyamo/guest-hub/internal/middleware"
	"github.com/iliyamo/guest-hub/internal/queue"
	"github.com/iliyamo/guest-hub/internal/repository"
	"github.com/iliyamo/guest-hub/internal/request"
	"github.com/iliyamo/guest-hub/internal/router"
	"github.com/iliyamo/guest-hub/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	repo := repository.NewListingRepo(db)
	listings := repository.NewCachedListings(repo, rdb, config.LoadListingCacheConfig())

	requests := request.NewList()
	seed, err := request.DefaultSeed()
	if err != nil {
		log.Fatalf("seed booking requests: %v", err)
	}
	requests.Seed(seed)

	hub := service.NewHub(listings, conversation.NewRegistry(), requests, service.SimulatedGateway{Delay: cfg.ActionDelay})
	publisher := service.NewAMQPPublisher(cfg.AMQPURL)
	defer publisher.Close()
	hub.Publisher = publisher
	hub.Now = func() time.Time { return time.Now().In(cfg.Location) }

	if _, err := hub.Refresh(ctx); err != nil {
		log.Printf("initial refresh failed: %v", err) // the inbox stays empty until the next change
	}

	go func() { _ = queue.Consume(ctx, cfg.AMQPURL, queue.ListingsChangedQueue, queue.ListingsChanged(hub.OnListingsChanged)) }()
	go func() { _ = queue.Consume(ctx, cfg.AMQPURL, queue.HostActionsQueue, queue.ActionLog("logs")) }()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	h := handler.NewGuestHubHandler(hub)
	h.DB = repo.DB()
	router.RegisterRoutes(e, h)
	router.RegisterGuestHub(e, h, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
