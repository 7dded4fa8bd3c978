// internal/config/config.go
// Environment-based application configuration

package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	// Server
	Port        string
	Environment string
	BaseURL     string

	// Storage
	StoreDriver string // "memory" or "postgres"
	DatabaseURL string
	RedisURL    string
	SeedData    bool

	// Auth
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int

	// Uploads
	UploadDriver  string // "s3" or "local"
	S3Bucket      string
	S3Region      string
	UploadDir     string
	MaxUploadSize int64
}

// Load reads configuration from the environment, with .env support in
// development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),

		StoreDriver: getEnv("STORE_DRIVER", "memory"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		SeedData:    getEnvBool("SEED_DATA", true),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		AccessTokenExpiry:  getEnvDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
		RefreshTokenExpiry: getEnvDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
		BCryptCost:         getEnvInt("BCRYPT_COST", 10),

		UploadDriver:  getEnv("UPLOAD_DRIVER", "local"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_SIZE", 5*1024*1024)),
	}
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.StoreDriver != "memory" && c.StoreDriver != "postgres" {
		return errors.New("STORE_DRIVER must be memory or postgres")
	}
	if c.StoreDriver == "postgres" && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
	}
	if c.UploadDriver == "s3" && c.S3Bucket == "" {
		return errors.New("S3_BUCKET is required when UPLOAD_DRIVER=s3")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		log.Printf("Invalid value for %s, using default %t", key, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Invalid value for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
