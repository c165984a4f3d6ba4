package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Notes     NotesConfig
	Cache     CacheConfig
	Events    EventsConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	ViewLogFilePath    string
	CorsAllowedOrigins string
	BodyLimit          int
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "sqlite"
	Connection string
}

type AuthConfig struct {
	JwtSecret string
}

type NotesConfig struct {
	GuestAccess       string // "deny", "read", "write" or "create"
	ForbiddenAliases  []string
	MaxDocumentLength int

	// Special visibility applied to freshly created notes: "none", "read" or "write".
	DefaultEveryoneAccess string
	DefaultLoggedInAccess string
}

type CacheConfig struct {
	RedisURL         string
	ViewDedupeWindow time.Duration
}

type EventsConfig struct {
	NatsEnabled   bool
	NatsURL       string
	ViewTopicName string
}

type TelemetryConfig struct {
	OtelEnabled  bool
	OtelEndpoint string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			ViewLogFilePath:    getEnv("VIEW_LOG_FILE_PATH", "logs/views.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			BodyLimit:          getEnvAsInt("BODY_LIMIT_BYTES", 2*1024*1024),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "postgres"),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Notes: NotesConfig{
			GuestAccess:           getEnv("GUEST_ACCESS", "write"),
			ForbiddenAliases:      getEnvAsList("FORBIDDEN_ALIASES", []string{"new", "me", "history", "api"}),
			MaxDocumentLength:     getEnvAsInt("MAX_DOCUMENT_LENGTH", 100000),
			DefaultEveryoneAccess: getEnv("DEFAULT_EVERYONE_ACCESS", "read"),
			DefaultLoggedInAccess: getEnv("DEFAULT_LOGGED_IN_ACCESS", "write"),
		},
		Cache: CacheConfig{
			RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
			ViewDedupeWindow: getEnvAsDuration("VIEW_DEDUPE_WINDOW", 10*time.Minute),
		},
		Events: EventsConfig{
			NatsEnabled:   getEnvAsBool("NATS_ENABLED", false),
			NatsURL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ViewTopicName: getEnv("NOTE_VIEWED_TOPIC_NAME", "NOTE_VIEWED"),
		},
		Telemetry: TelemetryConfig{
			OtelEnabled:  getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(strValue, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
