package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultJWTSecret is accepted for local runs but must be overridden in any shared deployment.
	DefaultJWTSecret = "your_secret_key"

	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	StorageDriver string
	MySQLDSN      string
	ResetDB       bool
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	SwaggerHost   string
}

// Load builds Config from an optional .env file and the environment, with sensible defaults.
func Load() *Config {
	// .env is optional; real environment variables always win.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("PORT", "3000"),
		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:      getEnvDuration("TOKEN_TTL", time.Hour),
		BcryptCost:    getEnvInt("BCRYPT_COST", 10),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageMemory),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/bookkeeper?charset=utf8mb4&parseTime=True&loc=UTC"),
		ResetDB:       os.Getenv("RESET_DB") == "true",
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}

	if cfg.JWTSecret == DefaultJWTSecret {
		log.Println("WARNING: JWT_SECRET not set, using the insecure default signing secret")
	}
	return cfg
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
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
