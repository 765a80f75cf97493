// Package main main
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/OVantsevich/Position-Service/internal/config"
	"github.com/OVantsevich/Position-Service/internal/repository"
	"github.com/OVantsevich/Position-Service/internal/service"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file: %v", err)
	}
	cfg, err := config.NewMainConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := dbConnection(ctx, cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer pool.Close()

	client, err := redisConnection(ctx, cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer closeRedis(client)

	runner := repository.NewPgxWithinTransactionRunner(pool)
	transactor := repository.NewPgxTransactor(pool, cfg.StoreTimeout)
	positionRepository := repository.NewPositionRepository(runner)
	orderRepository := repository.NewOrderRepository(runner)
	outbox := repository.NewOutboxRepository(runner)
	instrumentRepository := repository.NewInstrumentRepository(runner)
	accountRepository := repository.NewAccountRepository(runner)
	markPrice := repository.NewMarkPriceRepository(client)
	bot := repository.NewBotRepository(runner, client, cfg.BotSuspendTTL)
	positionCache := repository.NewPositionCache(client)
	commandBus := repository.NewCommandBus(client, cfg.CommandStream)

	store := service.NewPositionStore(positionRepository, positionCache, cfg.OperationIDDivisor, cfg.CacheRepairTTL,
		cfg.StoreTimeout)
	lifecycle := service.NewLifecycle(store, positionRepository, orderRepository, outbox, transactor,
		instrumentRepository, accountRepository, markPrice, bot, cfg.CloseConcurrency)
	riskView := service.NewRiskView(store, instrumentRepository, accountRepository, markPrice)
	relay := service.NewRelay(outbox, transactor, commandBus, cfg.RelayInterval, cfg.RelayBatchSize, cfg.PublishTimeout,
		cfg.RelayPublishBudget)
	engine := service.NewEngine(store, lifecycle, riskView, relay)

	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.MetricsPort),
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("error while serving metrics: %v", err)
			stop()
		}
	}()

	logrus.WithFields(logrus.Fields{
		"stream":      cfg.CommandStream,
		"metricsPort": cfg.MetricsPort,
	}).Info("position engine started")
	engine.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = metricsServer.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error while stopping metrics server: %v", err)
	}
	logrus.Info("position engine stopped")
}

func dbConnection(ctx context.Context, cfg *config.MainConfig) (*pgxpool.Pool, error) {
	pgURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", cfg.PostgresUser, cfg.PostgresPassword,
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)

	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration data: %v", err)
	}
	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database not responding: %v", err)
	}
	return pool, nil
}

func redisConnection(ctx context.Context, cfg *config.MainConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis not responding: %v", err)
	}
	return client, nil
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logrus.Errorf("error while closing redis: %v", err)
	}
}
