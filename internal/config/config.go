package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment
// variables. It is resolved once at process start and passed explicitly to
// the components that need it.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string
	JWTExpires time.Duration
	BcryptCost int
	AdminEmail string
	AdminPass  string
}

// Load builds Config from environment. The JWT signing secret and the storage
// DSN are required; their absence is a startup failure.
func Load() (*Config, error) {
	// Optional .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   os.Getenv("MYSQL_DSN"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTExpires: getEnvDuration("JWT_EXPIRES", 7*24*time.Hour),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),
		AdminEmail: getEnv("ADMIN_EMAIL", "admin@arcadestore.com"),
		AdminPass:  getEnv("ADMIN_PASSWORD", "admin123"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.MySQLDSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN is not set")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
