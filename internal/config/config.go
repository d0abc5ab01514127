package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Client  ClientConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

// BackendConfig holds the credentials the proxy injects on every outbound
// request. These never leave the process in a response body.
type BackendConfig struct {
	BaseURL         string
	ServiceEmail    string
	ServicePassword string
	APIKey          string
	TimeoutSeconds  int // 0 = no client timeout
}

// ClientConfig drives the terminal chat client.
type ClientConfig struct {
	ProxyURL              string
	ProfilePath           string
	SuggestionDelayMs     int
	RecommendationDelayMs int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Backend: BackendConfig{
			BaseURL:         getEnv("BACKEND_URL", ""),
			ServiceEmail:    getEnv("SERVICE_EMAIL", ""),
			ServicePassword: getEnv("SERVICE_PASSWORD", ""),
			APIKey:          getEnv("API_KEY", ""),
			TimeoutSeconds:  getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 0),
		},
		Client: ClientConfig{
			ProxyURL:              getEnv("PROXY_URL", "http://localhost:3000"),
			ProfilePath:           getEnv("PROFILE_PATH", "asha_user_profile.json"),
			SuggestionDelayMs:     getEnvAsInt("SUGGESTION_DELAY_MS", 100),
			RecommendationDelayMs: getEnvAsInt("RECOMMENDATION_DELAY_MS", 1000),
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
