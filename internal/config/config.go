package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Port                string
	BaseURL             string
	ClientURL           string
	Environment         string
	LogFilePath         string
	ChatLogFilePath     string
	CorsAllowedOrigins  string
	NatsURL             string
	RedisURL            string
	MessageCreatedTopic string
}

type DatabaseConfig struct {
	Connection string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                getEnv("APP_PORT", "3000"),
			BaseURL:             getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:           getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:         getEnv("GO_ENV", "development"),
			LogFilePath:         getEnv("LOG_FILE_PATH", "logs/app.log"),
			ChatLogFilePath:     getEnv("CHAT_LOG_FILE_PATH", "logs/chat.log"),
			CorsAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:             getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
			MessageCreatedTopic: getEnv("MESSAGE_CREATED_TOPIC_NAME", "MESSAGE_CREATED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
