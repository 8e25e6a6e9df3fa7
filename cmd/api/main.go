package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	handlerHttp "github.com/mikiasgoitom/Reelrank/internal/handler/http"
	redisclient "github.com/mikiasgoitom/Reelrank/internal/infrastructure/cache"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/config"
	database "github.com/mikiasgoitom/Reelrank/internal/infrastructure/database"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/events"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/logger"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/storage"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/store"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/validator"
	"github.com/mikiasgoitom/Reelrank/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run wires and serves the API. Every failure is returned so deferred
// cleanup runs before the process exits.
func run() error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appLogger, syncLogger, err := logger.NewLogger(appConfig.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer syncLogger()

	if appConfig.MongoURI == "" {
		return errors.New("MONGODB_URI environment variable not set")
	}
	if appConfig.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}
	if appConfig.Minio.Endpoint == "" {
		return errors.New("MINIO_ENDPOINT environment variable not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(appConfig.MongoURI)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer mongoClient.Disconnect()
	db := mongoClient.Client.Database(appConfig.MongoDBName)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	// Dependency Injection: Repositories
	repos := usecase.Repositories{
		Reels:    mongodb.NewReelRepository(db),
		Likes:    mongodb.NewLikeRepository(db),
		Saves:    mongodb.NewSavedRepository(db),
		Users:    mongodb.NewMongoUserRepository(db.Collection("users")),
		Comments: mongodb.NewCommentRepository(db),
		Tracks:   mongodb.NewAudioTrackRepository(db),
	}

	// Optional Dependency Injection: Redis cache. Without it every cache call
	// is a miss and reads go to MongoDB.
	var cache *store.CacheClient
	if appConfig.RedisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(ctx, appConfig.RedisURL)
		if err != nil && rdb == nil {
			return fmt.Errorf("failed to configure Redis: %w", err)
		}
		if err != nil {
			appLogger.Warnf("Redis unavailable at startup, continuing degraded: %v", err)
		}
		defer redisclient.Close(rdb)
		cache = store.NewCacheClient(rdb, appLogger, appConfig.CacheOpTimeout)
	} else {
		appLogger.Warnf("REDIS_URL not set, running without cache")
		cache = store.NewCacheClient(nil, appLogger, appConfig.CacheOpTimeout)
	}

	// Object storage
	objectStorage, err := storage.NewMinioStorage(storage.MinioConfig{
		Endpoint:  appConfig.Minio.Endpoint,
		AccessKey: appConfig.Minio.AccessKey,
		SecretKey: appConfig.Minio.SecretKey,
		UseSSL:    appConfig.Minio.UseSSL,
		Region:    appConfig.Minio.Region,
	})
	if err != nil {
		return fmt.Errorf("failed to configure object storage: %w", err)
	}
	if err := objectStorage.EnsureBucket(ctx, appConfig.GetMediaBucket()); err != nil {
		appLogger.Warnf("Failed to ensure bucket %s: %v", appConfig.GetMediaBucket(), err)
	}

	// Engagement events
	var publisher contract.IEventPublisher = events.NoopPublisher{}
	if len(appConfig.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(appConfig.KafkaBrokers, appConfig.KafkaTopic, appLogger)
	}
	defer publisher.Close()

	// Dependency Injection: Services
	jwtService := jwt.NewJWTService(jwt.NewJWTManager(appConfig.JWTSecret))
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()
	validator.RegisterCustomValidators()

	// Dependency Injection: Usecases
	counter := usecase.NewCounterService(cache, repos.Reels, repos.Likes, appConfig, appLogger)
	ranker := usecase.NewTrendingRanker(cache)
	feeds := usecase.NewFeedCache(cache, appConfig.GetFeedCacheTTL(), appLogger)
	engagementUsecase := usecase.NewEngagementUsecase(repos, objectStorage, publisher, counter, ranker, feeds, uuidGenerator, appValidator, appConfig, appLogger)
	musicUsecase := usecase.NewMusicUsecase(repos.Tracks, ranker, uuidGenerator, appValidator, appLogger)
	mediaUsecase := usecase.NewMediaUsecase(objectStorage, uuidGenerator, appValidator, appConfig, appLogger)

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(engagementUsecase, musicUsecase, mediaUsecase, jwtService, cache, appConfig.RateLimitPerSecond)
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		appLogger.Infof("Server running on port %s", appConfig.Port)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
