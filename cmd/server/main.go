package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guardian-backend/internal/config"
	"guardian-backend/internal/database"
	"guardian-backend/internal/handlers"
	"guardian-backend/internal/middleware"
	"guardian-backend/internal/repository"
	"guardian-backend/internal/router"
	"guardian-backend/internal/services"
	"guardian-backend/internal/websocket"
	"guardian-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting Guardian Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	contactRepo := repository.NewContactRepo(pool)
	checkinRepo := repository.NewCheckinRepo(pool)
	sosRepo := repository.NewSOSRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	alertPublisher := services.NewAlertPublisher(redisClients.Queue)
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth)
	checkinService := services.NewCheckinService(checkinRepo, sosRepo, alertPublisher)
	sosService := services.NewSOSService(sosRepo, sosRepo, userRepo, alertPublisher)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	contactHandler := handlers.NewContactHandler(contactRepo)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	sosHandler := handlers.NewSOSHandler(sosService)
	healthHandler := handlers.NewHealthHandler(cfg.Env)

	// ──── Step 5: Start Alert Worker Pool ────
	workerPool := worker.NewPool(redisClients.Queue, emailService, userRepo, contactRepo, cfg.AlertWorkers)
	workerPool.Start()
	log.Printf("✓ Alert worker pool started (%d goroutines)", cfg.AlertWorkers)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		contactHandler,
		checkinHandler,
		sosHandler,
		healthHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Guardian Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
