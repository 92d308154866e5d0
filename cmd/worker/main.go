package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightdesk/config"
	"flightdesk/internal/cache"
	"flightdesk/internal/database"
	"flightdesk/internal/email"
	"flightdesk/internal/kafka"
	"flightdesk/internal/logger"
	"flightdesk/internal/repository"
	"flightdesk/internal/service/ledger"

	"github.com/joho/godotenv"
	kafkaGo "github.com/segmentio/kafka-go"
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

	workerLog, err := logger.New(logger.INFO, cfg.Log.File)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer workerLog.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisClient := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()
	redisCache := cache.NewRedisCache(redisClient, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	ledgerService := ledger.NewLedgerService(
		bookingRepo,
		flightRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingEventsTopic,
		ledger.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		ledger.WithLogger(workerLog),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender()

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				workerLog.Warnf("WORKER", "decode event: %v", err)
				return nil
			}
			user, err := userRepo.GetByID(ctx, event.UserID)
			if err != nil {
				workerLog.Warnf("WORKER", "lookup user %d: %v", event.UserID, err)
				return nil
			}
			return sender.Send(ctx, user.Email, event)
		})
		if err != nil {
			workerLog.Warnf("WORKER", "consumer stopped: %v", err)
		}
	}()

	sweep := time.NewTicker(time.Duration(cfg.Worker.SweepMinutes) * time.Minute)
	defer sweep.Stop()

	paymentTTL := time.Duration(cfg.Booking.PaymentTTLMinutes) * time.Minute

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	workerLog.Info("WORKER", "started")

	for {
		select {
		case <-sweep.C:
			cancelled, err := ledgerService.CancelStalePendingPayments(ctx, paymentTTL)
			if err != nil {
				workerLog.Errorf("WORKER", "stale payment sweep: %v", err)
				continue
			}
			if len(cancelled) > 0 {
				workerLog.Infof("WORKER", "cancelled %d bookings with stale payments", len(cancelled))
			}
		case s := <-sig:
			workerLog.Infof("WORKER", "received signal %v, shutting down", s)
			return
		}
	}
}
