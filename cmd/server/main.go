package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"wishlisted/docs"
	"wishlisted/internal/auth"
	"wishlisted/internal/cache"
	"wishlisted/internal/config"
	"wishlisted/internal/db"
	"wishlisted/internal/handler"
	"wishlisted/internal/model"
	"wishlisted/internal/repository"
	"wishlisted/internal/router"
	"wishlisted/internal/service"
)

// @title Wishlisted API
// @version 1.0
// @description Wishlist sharing API with reservations, friends, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	log.Printf("Swagger UI: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.AuthToken{},
			&model.Follow{},
			&model.Wish{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Wish{},
		&model.Follow{},
		&model.AuthToken{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	wishRepo := repository.NewWishRepository(gormDB)
	followRepo := repository.NewFollowRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	objectStore, err := service.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatalf("object store init: %v", err)
	}

	authService := service.NewAuthService(userRepo, tokenRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	friendService := service.NewFriendService(userRepo, followRepo)
	wishService := service.NewWishService(wishRepo, userRepo)
	mediaService := service.NewMediaService(objectStore, userRepo)

	authHandler := handler.NewAuthHandler(authService, jwtService, cfg.CookieSecure)
	userHandler := handler.NewUserHandler(userService, friendService)
	wishHandler := handler.NewWishHandler(wishService, jwtService)
	mediaHandler := handler.NewMediaHandler(mediaService)

	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		userHandler,
		wishHandler,
		mediaHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
