package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/session-booking/internal/config"
	"github.com/iliyamo/session-booking/internal/database"
	"github.com/iliyamo/session-booking/internal/handler"
	"github.com/iliyamo/session-booking/internal/middleware"
	"github.com/iliyamo/session-booking/internal/queue"
	"github.com/iliyamo/session-booking/internal/repository"
	"github.com/iliyamo/session-booking/internal/router"
	"github.com/iliyamo/session-booking/internal/service"
	"github.com/iliyamo/session-booking/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	sessionRepo := repository.NewSessionRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	studentRepo := repository.NewStudentRepo(db)
	instructorRepo := repository.NewInstructorRepo(db)

	// Seed the weekly grid and the instructor account.  Both are
	// idempotent and leave existing rows untouched.
	if err := sessionRepo.Seed(ctx, uint32(cfg.DefaultCapacity)); err != nil {
		log.Fatalf("seed sessions: %v", err)
	}
	hash, err := utils.HashPassword(cfg.InstructorPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash instructor password: %v", err)
	}
	if err := instructorRepo.EnsureSeed(ctx, cfg.InstructorEmail, hash); err != nil {
		log.Fatalf("seed instructor: %v", err)
	}

	manager := service.NewBookingManager(bookingRepo, cfg.MaxDaysPerStudent)

	authHandler := handler.NewAuthHandler(studentRepo, instructorRepo, cfg.JWTSecret, cfg.AccessTTLMin)
	bookingHandler := handler.NewBookingHandler(manager, bookingRepo)
	availabilityHandler := handler.NewAvailabilityHandler(bookingRepo)
	instructorHandler := handler.NewInstructorHandler(sessionRepo, studentRepo, bookingRepo)

	e := echo.New()

	// Redis is optional: when unreachable, rate limiting and the
	// availability cache silently disable themselves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	availabilityCache := middleware.GuestOnly(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler)
	router.RegisterAvailability(e, availabilityHandler, cfg.JWTSecret, availabilityCache)
	router.RegisterStudent(e, bookingHandler, cfg.JWTSecret)
	router.RegisterInstructor(e, instructorHandler, cfg.JWTSecret)

	// Consume booking lifecycle events in the background; the consumer
	// reconnects forever and never stops the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
