package main

import (
	"log"
	"net/http"

	_ "magicstore/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"magicstore/internal/cache"
	"magicstore/internal/config"
	"magicstore/internal/db"
	"magicstore/internal/handler"
	"magicstore/internal/model"
	"magicstore/internal/repository"
	"magicstore/internal/router"
	"magicstore/internal/service"
	"magicstore/internal/session"
)

// @title Magic Store API
// @version 1.0
// @description Course storefront API with catalog, session login, checkout, and admin approval.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Course{},
		&model.User{},
		&model.Order{},
		&model.Settings{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessions := session.NewManager(cfg.SessionSecret)

	// Initialize repositories
	courseRepo := repository.NewCourseRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	settingsRepo := repository.NewSettingsRepository(gormDB)

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo, cacheClient)
	catalogService := service.NewCatalogService(courseRepo, cacheClient)
	authService := service.NewAuthService(userRepo)
	orderService := service.NewOrderService(courseRepo, userRepo, orderRepo, settingsService)
	userService := service.NewUserService(userRepo, orderRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, settingsService, sessions)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(orderService, userService, settingsService)

	// Register routes
	router.Register(e, sessions, authHandler, catalogHandler, orderHandler, adminHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
