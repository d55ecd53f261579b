// Package config loads service configuration from the environment. cmd
// binaries call godotenv.Load first so a local .env file works in dev.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything the server needs to wire its backends.
type Config struct {
	HTTPAddr string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	// Object storage holding the recorded audio evidence.
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageUseSSL    bool
	// BucketPrefix + meeting ID gives the bucket name, e.g. "meeting42".
	BucketPrefix string
	// LegacyURLPrefixFormat is the display URL prefix older clients embedded
	// into Report.FilePath. %d is the meeting ID.
	LegacyURLPrefixFormat string

	// TranscribeEndpoint is the speech-to-text HTTP endpoint.
	TranscribeEndpoint string

	SMTPHost string
	SMTPPort string
	SMTPFrom string
	SMTPPass string

	StorageTimeout    time.Duration
	TranscribeTimeout time.Duration
}

// Load reads the configuration from the environment, applying defaults that
// match local docker-compose development.
func Load() Config {
	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "meetzdb"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "dev-only-secret"),

		StorageEndpoint:       getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:      os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey:      os.Getenv("STORAGE_SECRET_KEY"),
		StorageUseSSL:         getEnvBool("STORAGE_USE_SSL", false),
		BucketPrefix:          getEnv("STORAGE_BUCKET_PREFIX", "meeting"),
		LegacyURLPrefixFormat: getEnv("STORAGE_LEGACY_URL_PREFIX", "https://kr.object.ncloudstorage.com/meeting%d/"),

		TranscribeEndpoint: getEnv("TRANSCRIBE_ENDPOINT", "http://localhost:9090/transcribe"),

		SMTPHost: getEnv("SMTP_HOST", "localhost"),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPFrom: os.Getenv("SMTP_FROM"),
		SMTPPass: os.Getenv("SMTP_PASSWORD"),

		StorageTimeout:    getEnvDuration("STORAGE_TIMEOUT", 15*time.Second),
		TranscribeTimeout: getEnvDuration("TRANSCRIBE_TIMEOUT", 60*time.Second),
	}
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
