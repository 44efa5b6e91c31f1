package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Cohere     string
	OpenRouter string
	EmbedTopic string // topic name for the embed pipeline
}

type AIConfig struct {
	EmbeddingProvider string // "cohere" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "openrouter" or "ollama"
	LLMModel          string // e.g. "openai/gpt-3.5-turbo"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Cohere:     getEnv("COHERE_API_KEY", ""),
			OpenRouter: getEnv("OPENROUTER_API_KEY", ""),
			EmbedTopic: getEnv("EMBED_EXAMPLE_TOPIC_NAME", "EMBED_KNOWLEDGE_EXAMPLE"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "cohere"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:          getEnv("LLM_MODEL", "openai/gpt-3.5-turbo"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
