package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerAddr string

	JWTSecret []byte
	JWTTTL    time.Duration

	// Shared secret presented by the ingestion pipeline on the bulk
	// metrics endpoint. Empty disables the endpoint.
	BulkMetricsSecret string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel    string
	CORSOrigins []string

	Version string
}

func LoadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		JWTSecret: []byte(getEnv("JWT_SECRET", "change-me-in-production")),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,

		BulkMetricsSecret: getEnv("BULK_METRICS_SECRET", ""),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: parseOrigins(getEnv("CORS_ORIGINS", "*")),

		Version: getEnv("APP_VERSION", "dev"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func parseOrigins(envValue string) []string {
	var origins []string
	for _, origin := range strings.Split(envValue, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
