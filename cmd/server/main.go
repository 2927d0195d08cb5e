package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"docfinder/internal/config"
	"docfinder/internal/database"
	"docfinder/internal/handlers"
	"docfinder/internal/middleware"
	"docfinder/internal/repository"
	"docfinder/internal/routes"
	"docfinder/internal/server"
	"docfinder/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables:", err)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting docfinder in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout.Std(), sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	userRepo := repository.NewMongoUserRepo(db, cfg.Collections.Users)
	doctorRepo := repository.NewMongoDoctorRepo(db, cfg.Collections.Doctors)

	authSvc := services.NewAuthService(userRepo, cfg.App.JWT.Secret, cfg.App.JWT.TTLDays, logger)
	doctorSvc := services.NewDoctorService(doctorRepo, logger)

	secureCookies := cfg.App.Env == "production"
	authHandler := handlers.NewAuthHandler(authSvc, logger, secureCookies, cfg.App.JWT.TTLDays)
	doctorHandler := handlers.NewDoctorHandler(doctorSvc, logger)

	deps := routes.Deps{
		Auth:        authHandler,
		Doctors:     doctorHandler,
		RequireAuth: middleware.RequireAuth(cfg.App.JWT.Secret),
	}

	// Rate limiting only runs when Redis is configured.
	if cfg.Redis.Addr != "" {
		rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
		if err != nil {
			sugar.Fatal(err)
		}
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				sugar.Errorf("Redis client close error: %v", cerr)
			}
		}()

		limit := cfg.Security.AuthRateLimitPerMinute
		if limit <= 0 {
			limit = 20
		}
		limiter := middleware.NewRateLimiter(rdb, "auth_rate_limit", limit, time.Minute)
		deps.AuthLimiter = limiter.ByIP()
	} else {
		sugar.Warn("Redis not configured, auth rate limiting disabled")
	}

	app := server.New(cfg, deps, logger)

	go func() {
		listenAddr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", listenAddr)
		if err := app.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}

	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}

	sugar.Info("Graceful shutdown complete")
}
