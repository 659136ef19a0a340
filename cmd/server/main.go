package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/adapter/httpapi"
	natsadapter "github.com/Fatima-ez-zahraa/rappelv2/internal/adapter/messaging/nats"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/config"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/mailer"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/platform/metrics"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/registry"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/repository"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/token"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/usecase"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect MongoDB client", zap.Error(err))
		}
	}()
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.MongoDatabase)
	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))

	// NATS is optional: with no URL configured, domain events are skipped.
	var publisher usecase.Publisher
	if cfg.NATSURL != "" {
		natsPublisher, err := natsadapter.NewPublisher(cfg.NATSURL)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.String("url", cfg.NATSURL), zap.Error(err))
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("Connected to NATS", zap.String("url", cfg.NATSURL))
	} else {
		logger.Info("NATS disabled, domain events will not be published")
	}

	metricsManager := metrics.NewManager("rappel")
	go func() {
		if err := metrics.StartServer(fmt.Sprintf("%d", cfg.MetricsPort), logger, metricsManager.Registry); err != nil {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	accountRepo := repository.NewAccountRepository(db, logger)
	leadRepo := repository.NewLeadRepository(db, logger)
	quoteRepo := repository.NewQuoteRepository(db, logger)

	tokens := token.NewService(cfg.JWTSecret)
	smtpMailer := mailer.NewGomailMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername,
		cfg.SMTPPassword, cfg.SMTPFrom, cfg.SMTPSender, logger)

	authUsecase := usecase.NewAuthUsecase(accountRepo, tokens, smtpMailer, logger)
	leadUsecase := usecase.NewLeadUsecase(leadRepo, smtpMailer, publisher, logger)
	quoteUsecase := usecase.NewQuoteUsecase(quoteRepo, publisher, logger)
	statsUsecase := usecase.NewStatsUsecase(leadRepo, quoteRepo, logger)

	registryClient := registry.NewClient(cfg.RegistryBaseURL, cfg.RegistryAPIKey,
		registry.NewRedisCache(redisClient), logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Auth:        authUsecase,
		Leads:       leadUsecase,
		Quotes:      quoteUsecase,
		Stats:       statsUsecase,
		Registry:    registryClient,
		Tokens:      tokens,
		Metrics:     metricsManager,
		Logger:      logger,
		AllowOrigin: cfg.CORSAllowOrigin,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("HTTP server starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}
