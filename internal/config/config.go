package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	DBUrl                string
	JWTSecret            string
	AppEnv               string
	CheckoutURL          string
	CheckoutAPIKey       string
	StorageTimeout       time.Duration
	DBMaxConns           int32
	DBMinConns           int32
	DefaultAdminUsername string
	DefaultAdminPassword string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DBUrl:                getEnv("DB_URL", ""),
		JWTSecret:            jwtSecret,
		AppEnv:               normalizeEnv(getEnv("APP_ENV", "production")),
		CheckoutURL:          getEnv("CHECKOUT_URL", ""),
		CheckoutAPIKey:       getEnv("CHECKOUT_API_KEY", ""),
		StorageTimeout:       time.Duration(getEnvInt("STORAGE_TIMEOUT_SECONDS", 5)) * time.Second,
		DBMaxConns:           int32(getEnvInt("DB_MAX_CONNS", 10)),
		DBMinConns:           int32(getEnvInt("DB_MIN_CONNS", 2)),
		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", ""),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
