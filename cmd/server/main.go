package main

import (
	"bottle_orders/internal/api"    // Custom package for API handlers
	"bottle_orders/internal/config" // Custom package for configuration
	"bottle_orders/internal/db"     // Custom package for database setup
	"bottle_orders/internal/events" // Custom package for lifecycle events
	"bottle_orders/internal/store"  // Custom package for ledgers
	"context"                       // context package is needed for Redis operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database and bring the schema up to date
	database, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup Redis client; the list cache is optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logrus.Warnf("Redis unavailable, list cache disabled: %v", err)
			_ = redisClient.Close()
			redisClient = nil
		}
	}

	// Setup lifecycle event publisher
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.KafkaEnabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		// Fatal skips deferred calls; flush buffered events from the exit hook
		logrus.RegisterExitHandler(func() {
			if err := kafkaPublisher.Close(); err != nil {
				logrus.Warnf("failed to close Kafka publisher: %v", err)
			}
		})
		publisher = kafkaPublisher
		logrus.WithField("topic", cfg.KafkaTopic).Info("Publishing lifecycle events to Kafka")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Identity:    store.NewIdentityStore(database),
		Orders:      store.NewOrderLedger(database, publisher),
		Support:     store.NewSupportLedger(database, publisher),
		Contacts:    store.NewContactInbox(database),
		Redis:       redisClient,
		CacheTTL:    cfg.CacheTTL,
		Tokens:      api.TokenIssuer{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL},
		FrontendURL: cfg.FrontendURL,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.Info("Server running on " + cfg.AppPort) // Log server start
	err = r.Run(":" + cfg.AppPort)
	logrus.Fatalf("server stopped: %v", err) // Runs the exit handlers before exiting
}
