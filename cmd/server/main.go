package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"courtbook/internal/config"
	"courtbook/internal/database"
	"courtbook/internal/handler"
	"courtbook/internal/middleware"
	"courtbook/internal/queue"
	"courtbook/internal/repository"
	"courtbook/internal/router"
	"courtbook/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	rlCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient() // nil disables rate limiting

	users := repository.NewUserRepo(db)
	courts := repository.NewCourtRepo(db)
	reservations := repository.NewReservationRepo(db)
	notifications := repository.NewNotificationRepo(db)
	reports := repository.NewReportRepo(db)

	h := router.Handlers{
		Auth:               handler.NewAuthHandler(cfg, users),
		PublicCourts:       handler.NewPublicCourtHandler(courts),
		OwnerCourts:        handler.NewOwnerCourtHandler(courts),
		PlayerReservations: handler.NewPlayerReservationHandler(reservations),
		OwnerReservations:  handler.NewOwnerReservationHandler(reservations, notifications),
		Notifications:      handler.NewNotificationHandler(notifications),
		Reports:            handler.NewReportHandler(reports),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true, // session cookie must cross the origin boundary
	}))

	router.Register(e, h, cfg.JWTSecret, middleware.RateLimit(rlCfg, rdb))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background: archive finished reservations so their slots free up.
	sweeper := service.NewCompletionSweeper(reservations, time.Duration(cfg.SweepIntervalS)*time.Second)
	go sweeper.Run(ctx)

	// Background: consume cancellation events into logs/notifications.log.
	go func() {
		if err := queue.StartCancellationConsumer(); err != nil {
			log.Printf("cancel-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
