package main

import (
	"context"
	"log"
	"net/http"

	_ "internhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"internhub/internal/auth"
	"internhub/internal/cache"
	"internhub/internal/config"
	"internhub/internal/db"
	"internhub/internal/handler"
	"internhub/internal/model"
	"internhub/internal/repository"
	"internhub/internal/router"
	"internhub/internal/service"
)

// @title Intern Hub API
// @version 1.0
// @description Intern registry with password signup, Google login, and JWT-protected listing.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.Intern{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	verifier, err := auth.NewGoogleVerifier(context.Background(), cfg.GoogleClientID)
	if err != nil {
		log.Fatalf("google verifier init: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	internRepo := repository.NewInternRepository(gormDB)

	authService := service.NewAuthService(internRepo, jwtService, verifier, cacheClient)
	internService := service.NewInternService(internRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	internHandler := handler.NewInternHandler(internService)

	router.Register(e, cfg, authHandler, internHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
