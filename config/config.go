package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the service. Values come
// from the environment, optionally seeded from a .env file.
type Config struct {
	Address        string
	MongoURI       string
	MongoDatabase  string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	LogFile        string
	LogLevel       string
}

func Load() (*Config, error) {
	// A missing .env is fine; deployments set real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Address:        getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:       getEnv("MONGO_DB_URL", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DB_NAME", "planhub"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)) * time.Minute,
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		LogFile:        os.Getenv("LOG_FILE"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
