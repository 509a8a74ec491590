package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/travelplanner/service-trip/internal/application"
	"github.com/travelplanner/service-trip/internal/config"
	"github.com/travelplanner/service-trip/internal/domain/place"
	tripEvents "github.com/travelplanner/service-trip/internal/events"
	"github.com/travelplanner/service-trip/internal/handler"
	"github.com/travelplanner/service-trip/internal/platform/health"
	"github.com/travelplanner/service-trip/internal/platform/kafka"
	"github.com/travelplanner/service-trip/internal/platform/logger"
	"github.com/travelplanner/service-trip/internal/platform/middleware"
	"github.com/travelplanner/service-trip/internal/repository"
	"go.uber.org/zap"
)

const serviceName = "service-trip"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("places_backend", cfg.Places.Backend),
		zap.Bool("faults_enabled", cfg.Faults.Enabled),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the place table
	places, err := openPlaces(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open place table", zap.Error(err))
	}
	defer places.close()

	checks := map[string]health.Check{"places": places.check}

	// Connect the optional search cache
	var searchCache place.SearchCache
	if cfg.RedisConfig.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer func() { _ = redisClient.Close() }()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, searches will not be cached until it recovers",
				zap.String("addr", cfg.RedisConfig.Addr),
				zap.Error(err),
			)
		}
		searchCache = repository.NewRedisSearchCache(redisClient, cfg.RedisConfig.TTL)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	// Initialize Kafka producer
	var producer kafka.Publisher = kafka.NopPublisher{}
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		producer = kafkaProducer
	} else {
		log.Info("no kafka brokers configured, events will be dropped")
	}

	// Initialize application services
	faults := application.FaultInjection{
		Enabled:        cfg.Faults.Enabled,
		LookupSentinel: cfg.Faults.LookupSentinel,
		RouteSentinel:  cfg.Faults.RouteSentinel,
	}
	geoLookup := application.NewGeoLookup(places.repo, searchCache, faults, cfg.Timing.LookupDelay, log)
	distanceEngine := application.NewDistanceEngine(places.repo, faults, cfg.Timing.RouteDelay, log)
	tripService := application.NewTripService(
		repository.NewMemorySessionRepository(),
		geoLookup,
		distanceEngine,
		producer,
		cfg.Timing.PickerDebounce,
		log,
	)
	catalogService := application.NewCatalogService(places.repo, searchCache, producer, log)

	// Start the place event consumer in a goroutine
	if len(cfg.KafkaConfig.Brokers) > 0 {
		groupID := cfg.KafkaConfig.GroupPrefix + "trip-service"
		placeConsumer := tripEvents.NewPlaceEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			catalogService,
			log,
		)
		defer func() { _ = placeConsumer.Close() }()

		go func() {
			log.Info("starting place event consumer")
			if err := placeConsumer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("place event consumer error", zap.Error(err))
			}
		}()
	}

	// Start the idle trip janitor
	go tripService.RunJanitor(ctx, cfg.Sessions.PruneInterval, cfg.Sessions.TTL)

	// Initialize HTTP handlers
	placeHandler := handler.NewPlaceHandler(geoLookup)
	routeHandler := handler.NewRouteHandler(distanceEngine)
	tripHandler := handler.NewTripHandler(tripService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(serviceName, checks)
	healthHandler.RegisterRoutes(router)

	// Register routes
	placeHandler.RegisterRoutes(&router.RouterGroup)
	routeHandler.RegisterRoutes(&router.RouterGroup)
	tripHandler.RegisterRoutes(&router.RouterGroup)
	catalogHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Stop the consumer and the janitor
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
