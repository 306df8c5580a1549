package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	Port           string
	Environment    string
	APIKey         string
	AdminUsername  string
	AdminPassword  string
	GeminiEndpoint string
	GeminiAPIKey   string
	GeminiModel    string
	GeminiLiveURL  string

	// Simulation knobs. The dashboard variants disagreed on these values,
	// so they are environment-driven with one canonical default set.
	TickInterval   time.Duration
	SalesWindow    int
	StockDivisor   int
	ActivityLogCap int
	LoginDelay     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		APIKey:         getEnv("API_KEY", "default_secret_key"),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin"),
		GeminiEndpoint: getEnv("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiLiveURL:  getEnv("GEMINI_LIVE_URL", "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"),
		TickInterval:   getEnvDuration("TICK_INTERVAL", 12*time.Second),
		SalesWindow:    getEnvInt("SALES_WINDOW", 14),
		StockDivisor:   getEnvInt("STOCK_DIVISOR", 10),
		ActivityLogCap: getEnvInt("ACTIVITY_LOG_CAP", 5),
		LoginDelay:     getEnvDuration("LOGIN_DELAY", 800*time.Millisecond),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
