package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list values
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort      string        // Application port
	DBDriver     string        // mysql or sqlite
	DBUser       string        // Database user
	DBPassword   string        // Database password
	DBHost       string        // Database host
	DBPort       string        // Database port
	DBName       string        // Database name
	SQLitePath   string        // SQLite file when DBDriver is sqlite
	JWTSecret    string        // JWT secret key
	JWTTTL       time.Duration // Token lifetime
	RedisAddr    string        // Redis server address, empty disables the cache
	RedisPass    string        // Redis password
	RedisDB      int           // Redis database number
	CacheTTL     time.Duration // List cache lifetime
	KafkaEnabled bool          // Publish lifecycle events
	KafkaBrokers []string      // Kafka bootstrap brokers
	KafkaTopic   string        // Lifecycle event topic
	FrontendURL  string        // Allowed CORS origin
	IsProd       bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:      getEnv("APP_PORT", "3001"),                                            // Application port
		DBDriver:     getEnv("DB_DRIVER", "mysql"),                                          // Database driver
		DBUser:       os.Getenv("DB_USER"),                                                  // Database user
		DBPassword:   os.Getenv("DB_PASSWORD"),                                              // Database password
		DBHost:       getEnv("DB_HOST", "127.0.0.1"),                                        // Database host
		DBPort:       getEnv("DB_PORT", "3306"),                                             // Database port
		DBName:       getEnv("DB_NAME", "bottle_orders"),                                    // Database name
		SQLitePath:   getEnv("SQLITE_PATH", "bottle_orders.db"),                             // SQLite file
		JWTSecret:    os.Getenv("JWT_SECRET"),                                               // JWT secret key
		JWTTTL:       time.Duration(getEnvInt("JWT_TTL_HOURS", 168)) * time.Hour,            // Token lifetime
		RedisAddr:    os.Getenv("REDIS_ADDR"),                                               // Redis server address
		RedisPass:    os.Getenv("REDIS_PASS"),                                               // Redis password
		RedisDB:      getEnvInt("REDIS_DB", 0),                                              // Redis database number
		CacheTTL:     time.Duration(getEnvInt("CACHE_TTL_SECONDS", 60)) * time.Second,       // List cache lifetime
		KafkaEnabled: getEnvBool("KAFKA_ENABLED", false),                                    // Publish lifecycle events
		KafkaBrokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),         // Kafka brokers
		KafkaTopic:   getEnv("KAFKA_TOPIC", "order-events"),                                 // Lifecycle topic
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:5173"),                       // CORS origin
		IsProd:       os.Getenv("IS_PROD") == "true",                                        // Is production environment
	}
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
