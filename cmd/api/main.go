package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/config"
	"github.com/lakindu62/kidsfeed/internal/api"
	"github.com/lakindu62/kidsfeed/internal/database"
	"github.com/lakindu62/kidsfeed/internal/middleware"
	"github.com/lakindu62/kidsfeed/internal/repository/mongodb"
	"github.com/lakindu62/kidsfeed/internal/router"
	"github.com/lakindu62/kidsfeed/internal/server"
	"github.com/lakindu62/kidsfeed/internal/service"
	"github.com/lakindu62/kidsfeed/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.Environment)
	defer zlog.Sync() //nolint:errcheck

	mongoDB, err := database.NewMongo(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to Redis", zap.Error(err))
	}

	store := mongodb.NewStore(mongoDB.Database(), zlog)
	recipeRepo := mongodb.NewRecipeRepository(store)
	inventoryRepo := mongodb.NewInventoryRepository(store)
	studentRepo := mongodb.NewStudentRepository(store)
	sessionRepo := mongodb.NewMealSessionRepository(store)
	attendanceRepo := mongodb.NewAttendanceRepository(store)
	userRepo := mongodb.NewUserRepository(store)

	recipeSvc := service.NewRecipeService(recipeRepo, service.NewTableNutritionCalculator(), redisClient, zlog)
	inventorySvc := service.NewInventoryService(inventoryRepo, zlog)
	studentSvc := service.NewStudentService(studentRepo, recipeRepo, zlog)
	mealSvc := service.NewMealSessionService(sessionRepo, attendanceRepo, studentRepo, zlog)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, zlog)

	handlers := router.Handlers{
		Auth:        api.NewAuthHandler(authSvc, zlog),
		Recipes:     api.NewRecipeHandler(recipeSvc, zlog),
		Inventory:   api.NewInventoryHandler(inventorySvc, zlog),
		Students:    api.NewStudentHandler(studentSvc, zlog),
		MealSession: api.NewMealSessionHandler(mealSvc, zlog),
	}

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewWriteRateLimiter(redisClient)
	}

	engine := router.Setup(handlers, authSvc, rateLimiter, cfg.AllowedOrigins)
	srv := server.New(engine, cfg.ServerPort, zlog)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	zlog.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
	}
	if err := mongoDB.Disconnect(context.Background()); err != nil {
		zlog.Error("mongo disconnect error", zap.Error(err))
	}
	zlog.Info("stopped")
}
