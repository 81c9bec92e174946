package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelin/flightstore/config"
	"github.com/avelin/flightstore/internal/auth"
	"github.com/avelin/flightstore/internal/bootstrap"
	"github.com/avelin/flightstore/internal/cache"
	"github.com/avelin/flightstore/internal/kafka"
	"github.com/avelin/flightstore/internal/repository"
	"github.com/avelin/flightstore/internal/service/cart"
	"github.com/avelin/flightstore/internal/service/flights"
	"github.com/avelin/flightstore/internal/service/orders"
	"github.com/avelin/flightstore/internal/service/reviews"
	"github.com/avelin/flightstore/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	flightRepo := repository.NewFlightRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	deps := bootstrap.Deps{
		Pool:    pool,
		Tokens:  tokens,
		Flights: flights.NewFlightService(flightRepo, redisCache),
		Carts:   cart.NewCartService(cartRepo, flightRepo),
		Orders: orders.NewOrderService(
			orderRepo,
			redisCache,
			producer,
			cfg.Kafka.OrderEventsTopic,
			orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		),
		Users:   users.NewUserService(userRepo, tokens),
		Reviews: reviews.NewReviewService(reviewRepo, flightRepo),
	}

	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
