package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightdesk/config"
	"flightdesk/internal/auth"
	"flightdesk/internal/bootstrap"
	"flightdesk/internal/cache"
	"flightdesk/internal/database"
	"flightdesk/internal/kafka"
	"flightdesk/internal/logger"
	"flightdesk/internal/repository"
	"flightdesk/internal/service/airports"
	"flightdesk/internal/service/flights"
	"flightdesk/internal/service/ledger"
	"flightdesk/internal/service/owners"
	"flightdesk/internal/service/users"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, err := logger.New(logger.INFO, cfg.Log.File)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	redisClient := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()
	redisCache := cache.NewRedisCache(redisClient, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	sessions := auth.NewSessionStore(redisClient, time.Duration(cfg.Session.TTLMinutes)*time.Minute)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	airportRepo := repository.NewAirportRepository(pool)
	ownerRepo := repository.NewOwnerRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	svc := bootstrap.Services{
		Flights:  flights.NewFlightService(flightRepo, airportRepo, redisCache),
		Airports: airports.NewAirportService(airportRepo),
		Owners:   owners.NewOwnerService(ownerRepo),
		Users:    users.NewUserService(userRepo, sessions),
		Ledger: ledger.NewLedgerService(
			bookingRepo,
			flightRepo,
			redisCache,
			producer,
			cfg.Kafka.BookingEventsTopic,
			ledger.WithPNRMaxAttempts(cfg.Booking.PNRMaxAttempts),
			ledger.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
			ledger.WithLogger(appLog),
		),
	}

	appLog.Infof("APP", "listening on %s", cfg.HTTP.Address)
	if err := bootstrap.Run(ctx, cfg, svc); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
