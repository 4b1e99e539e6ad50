// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Postgres airport catalog
	PostgresDSN string

	// Sessions
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration

	// Google Maps
	GoogleMapsAPIKey string
	MatrixBatchSize  int
	PrefilterMargin  float64

	// Amadeus
	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusBaseURL      string

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	MailSender        string
	ResetURLBase      string

	// Search
	MaxInflightFareQueries int
	FareQueryTimeout       time.Duration
	FareMaxRetries         int
	SearchTimeout          time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:     getEnv("APP_VERSION", "1.0.0"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnv("PORT", "8080"),
		ReadTimeout:    time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout:   time.Duration(getEnvAsInt("WRITE_TIMEOUT", 90)) * time.Second,
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "airtrip"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres dbname=airtrip sslmode=disable"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 2*time.Hour),

		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		MatrixBatchSize:  getEnvAsInt("MATRIX_BATCH_SIZE", 25),
		PrefilterMargin:  getEnvAsFloat("PREFILTER_MARGIN", 0.25),

		AmadeusClientID:     getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret: getEnv("AMADEUS_CLIENT_SECRET", ""),
		AmadeusBaseURL:      getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		MailSender:        getEnv("MAIL_SENDER", "me"),
		ResetURLBase:      getEnv("RESET_URL_BASE", "http://localhost:3000/reset"),

		MaxInflightFareQueries: getEnvAsInt("MAX_INFLIGHT_FARE_QUERIES", 4),
		FareQueryTimeout:       getEnvAsDuration("FARE_QUERY_TIMEOUT", 20*time.Second),
		FareMaxRetries:         getEnvAsInt("FARE_MAX_RETRIES", 2),
		SearchTimeout:          getEnvAsDuration("SEARCH_TIMEOUT", 60*time.Second),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(value) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
