package bootstrap

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DeepgramAPIKey   string
	DeepgramModel    string
	DeepgramLanguage string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	OpenAIAPIKey    string
	StabilityAPIKey string

	BackendTimeout   time.Duration
	DefaultImageSize string

	AnalyticsWindow int
	CacheTTL        time.Duration

	StaticDir string
	IndexHTML string
}

func LoadConfig() *Config {
	// missing .env is fine; the environment still applies
	_ = godotenv.Load()

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DatabaseDSN: getEnv("DATABASE_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		DeepgramAPIKey:   getEnv("DEEPGRAM_API_KEY", ""),
		DeepgramModel:    getEnv("DEEPGRAM_MODEL", "nova-2"),
		DeepgramLanguage: getEnv("DEEPGRAM_LANGUAGE", "en"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),

		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		StabilityAPIKey: getEnv("STABILITY_API_KEY", ""),

		BackendTimeout:   time.Duration(getEnvInt("BACKEND_TIMEOUT_SECONDS", 30)) * time.Second,
		DefaultImageSize: getEnv("DEFAULT_IMAGE_SIZE", "512x512"),

		AnalyticsWindow: getEnvInt("ANALYTICS_WINDOW", 100),
		CacheTTL:        time.Duration(getEnvInt("CACHE_TTL_MINUTES", 60)) * time.Minute,

		StaticDir: getEnv("STATIC_DIR", "./static"),
		IndexHTML: getEnv("INDEX_HTML", "./static/index.html"),
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
