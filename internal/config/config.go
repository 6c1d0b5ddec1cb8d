package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Keys     TopicKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	UploadDir          string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	ZhipuAPIKey  string
	ZhipuBaseURL string
	Model        string
	// ContextBudget caps the assembled knowledge context, counted in runes.
	ContextBudget int
}

type TopicKeys struct {
	IndexTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			ZhipuAPIKey:   getEnv("ZHIPU_API_KEY", ""),
			ZhipuBaseURL:  getEnv("ZHIPU_BASE_URL", "https://open.bigmodel.cn/api/paas/v4"),
			Model:         getEnv("ZHIPU_MODEL", "glm-4-flash"),
			ContextBudget: getEnvAsInt("CONTEXT_BUDGET", 3000),
		},
		Keys: TopicKeys{
			IndexTopic: getEnv("INDEX_DOCUMENT_TOPIC_NAME", "INDEX_DOCUMENT"),
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
