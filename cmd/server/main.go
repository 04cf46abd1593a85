package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"comanda-pos/internal/config"     // Internal config loader
	"comanda-pos/internal/database"   // MySQL connection pool
	"comanda-pos/internal/handler"    // HTTP handlers
	"comanda-pos/internal/middleware" // rate limiter and response cache
	"comanda-pos/internal/queue"      // event hub and RabbitMQ consumer
	"comanda-pos/internal/repository" // data access layer
	"comanda-pos/internal/router"     // route registration
)

func main() {
	// Load .env if present; real deployments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the rate limiter and response cache
	// switch off and draft carts fall back to the in-memory store, which
	// is fine for a single instance.
	rdb := config.NewRedisClient()

	var carts repository.CartStore
	if rdb != nil {
		carts = repository.NewRedisCartStore(rdb)
	} else {
		log.Println("redis unavailable, draft carts held in memory")
		carts = repository.NewMemoryCartStore()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	tables := repository.NewTableRepo(db)
	products := repository.NewProductRepo(db)
	tickets := repository.NewTicketRepo(db)

	hub := queue.NewHub()

	// The consumer tails ticket events from RabbitMQ into the audit log.
	// It reconnects on its own; a missing broker only costs the audit
	// trail and cross-instance fan-out, never an order.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket consumer stopped: %v", err)
		}
	}()

	authH := handler.NewAuthHandler(cfg, users, tokens)
	tableH := handler.NewTableHandler(tables, tickets)
	productH := handler.NewProductHandler(products)
	posH := handler.NewPOSHandler(tables, products, tickets, carts, hub)
	displayH := handler.NewDisplayHandler(tickets, hub)

	var limiter, catalogCache echo.MiddlewareFunc
	if rdb != nil {
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		catalogCache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiter)
	router.RegisterPOS(e, posH, tableH, productH, displayH, cfg.JWTSecret, catalogCache)
	router.RegisterOwner(e, authH, tableH, productH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
