// Package config manages application configuration via environment variables.
//
// # Environment Variables
//
// ## Server
//   - SERVER_PORT: HTTP port (default: 8080)
//   - JWT_SECRET: HMAC secret for auth tokens (required for auth endpoints)
//   - JWT_TTL_HOURS: token lifetime in hours (default: 72)
//
// ## PostgreSQL
//   - DATABASE_URL: pgx connection string (default: postgres://localhost:5432/newsloop)
//
// ## Redis
//   - REDIS_ADDR: host:port (default: localhost:6379)
//   - REDIS_DB: database number (default: 0)
//
// ## Typesense
//   - TYPESENSE_HOST: Typesense server host (default: localhost)
//   - TYPESENSE_PORT: server port (default: 8108)
//   - TYPESENSE_API_KEY: Typesense API key
//   - TYPESENSE_PROTOCOL: http/https (default: http)
//   - TYPESENSE_COLLECTION: news collection name (default: news_articles)
//
// ## Gemini
//   - GEMINI_API_KEY: Google Gemini API key (embeddings + assistant)
//   - GEMINI_EMBEDDING_MODEL: embedding model (default: gemini-embedding-001)
//   - GEMINI_CHAT_MODEL: chat model for the assistant (default: gemini-2.0-flash)
//   - EMBEDDING_DIMENSIONS: article vector dimension (default: 1536)
//
// ## Recommendation
//   - RECOMMEND_POOL_SIZE: max candidate pool per request (default: 200)
//   - RECOMMEND_LIKE_WINDOW: recent likes considered (default: 10)
//   - RECOMMEND_VIEW_WINDOW: recent views considered (default: 20)
//
// ## Tracing
//   - TRACING_ENABLED: enable OTLP tracing (default: false)
//   - TRACING_ENDPOINT: OTLP gRPC endpoint (default: localhost:4317)
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	JWTSecret   string
	JWTTTLHours int

	DatabaseURL string

	RedisAddr string
	RedisDB   int

	TypesenseHost       string
	TypesensePort       string
	TypesenseAPIKey     string
	TypesenseProtocol   string
	TypesenseCollection string

	// Gemini configuration
	GeminiAPIKey         string
	GeminiEmbeddingModel string
	GeminiChatModel      string
	EmbeddingDimensions  int

	// Recommendation configuration
	Recommend RecommendConfig

	// Tracing configuration
	TracingEnabled  bool
	TracingEndpoint string
}

// RecommendConfig contains ranking-engine knobs.
type RecommendConfig struct {
	// Max candidate pool handed to the engine per request (default 200)
	PoolSize int

	// Recent likes window (default 10)
	LikeWindow int

	// Recent views window (default 20)
	ViewWindow int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 72),

		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/newsloop"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		TypesenseHost:       getEnv("TYPESENSE_HOST", "localhost"),
		TypesensePort:       getEnv("TYPESENSE_PORT", "8108"),
		TypesenseAPIKey:     getEnv("TYPESENSE_API_KEY", ""),
		TypesenseProtocol:   getEnv("TYPESENSE_PROTOCOL", "http"),
		TypesenseCollection: getEnv("TYPESENSE_COLLECTION", "news_articles"),

		// Gemini configuration
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
		GeminiChatModel:      getEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),
		EmbeddingDimensions:  getEnvInt("EMBEDDING_DIMENSIONS", 1536),

		Recommend: RecommendConfig{
			PoolSize:   getEnvInt("RECOMMEND_POOL_SIZE", 200),
			LikeWindow: getEnvInt("RECOMMEND_LIKE_WINDOW", 10),
			ViewWindow: getEnvInt("RECOMMEND_VIEW_WINDOW", 20),
		},

		// Tracing configuration
		TracingEnabled:  getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
	}
}

// TypesenseURL assembles the base URL of the Typesense node.
func (c *Config) TypesenseURL() string {
	return fmt.Sprintf("%s://%s:%s", c.TypesenseProtocol, c.TypesenseHost, c.TypesensePort)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
