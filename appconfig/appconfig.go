package appconfig

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultFCMBaseURL is the host of the FCM HTTP v1 API.
const DefaultFCMBaseURL = "https://fcm.googleapis.com"

// Config holds the relay settings. It is read from the environment on every
// request so that a changed secret or credential takes effect without a restart.
type Config struct {
	APIKey             string
	ProjectID          string
	ServiceAccountJSON string
	FCMBaseURL         string
}

// ServerConfig holds settings that are only read once at startup.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	Env            string
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return "0.0.0.0:" + s.Port
}

// Production reports whether APP_ENV selects production mode.
func (s ServerConfig) Production() bool {
	return strings.EqualFold(s.Env, "production")
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables that are already set are left alone. Call it before
// LoadServer so startup settings can come from the file.
func LoadDotEnv() error {
	return godotenv.Load()
}

// Load reads the relay configuration from the environment.
func Load() Config {
	return Config{
		APIKey:             os.Getenv("API_KEY"),
		ProjectID:          strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		ServiceAccountJSON: os.Getenv("SERVICE_ACCOUNT_JSON"),
		FCMBaseURL:         strings.TrimRight(getEnv("FCM_BASE_URL", DefaultFCMBaseURL), "/"),
	}
}

// LoadServer reads the server configuration from the environment.
func LoadServer() ServerConfig {
	return ServerConfig{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Env:            getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
