package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"github.com/malekjani/devops-capstone-project/internal/config"
	"github.com/malekjani/devops-capstone-project/internal/handler"
	"github.com/malekjani/devops-capstone-project/internal/middleware"
	"github.com/malekjani/devops-capstone-project/internal/migrations"
	"github.com/malekjani/devops-capstone-project/internal/repository"
	redisclient "github.com/malekjani/devops-capstone-project/internal/redis"
	"github.com/malekjani/devops-capstone-project/internal/service"
)

func main() {
	_ = godotenv.Load() // allow .env for local runs

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := migrations.Apply(migrateCtx, db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Redis read cache is optional: run without it when REDIS_ADDR is unset.
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		client, err := redisclient.NewClient(cfg.RedisAddr, "", 0)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		rdb = client.Client
	}

	repo := repository.NewAccountRepository(db, rdb)
	svc := service.NewAccountService(repo)
	accountHandler := handler.NewAccountHandler(svc)

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())
	handler.RegisterRoutes(router, accountHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Account service starting on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
