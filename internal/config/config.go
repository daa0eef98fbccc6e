package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Driver     string // "postgres", "sqlite" or "memory"
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	LLMProvider    string // "gemini", "ollama" or "huggingface"
	FastModel      string // analysis, rewrite, goal refinement
	QualityModel   string // drafting and chat
	OllamaBaseURL  string
	// Empty uses the Hugging Face router.
	HuggingFaceURL string
	MaxRetries     int
	RetryBaseDelay time.Duration
}

type SessionConfig struct {
	AnalysisDebounce     time.Duration
	AnalysisMinLength    int
	AnalysisAnchorLength int
	PersistDebounce      time.Duration
	SnapshotCap          int
	ProactiveByDefault   bool
	PersistTopic         string
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
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/session_ws.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			Connection: getEnv("DB_CONNECTION_STRING", "quill.db"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "gemini"),
			FastModel:      getEnv("LLM_FAST_MODEL", "gemini-3-flash-preview"),
			QualityModel:   getEnv("LLM_QUALITY_MODEL", "gemini-3-pro-preview"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceURL: getEnv("HUGGINGFACE_BASE_URL", ""),
			MaxRetries:     getEnvAsInt("LLM_MAX_RETRIES", 3),
			RetryBaseDelay: getEnvAsDuration("LLM_RETRY_BASE_DELAY", 2*time.Second),
		},
		Session: SessionConfig{
			AnalysisDebounce:     getEnvAsDuration("ANALYSIS_DEBOUNCE", 5*time.Second),
			AnalysisMinLength:    getEnvAsInt("ANALYSIS_MIN_LENGTH", 100),
			AnalysisAnchorLength: getEnvAsInt("ANALYSIS_ANCHOR_LENGTH", 20),
			PersistDebounce:      getEnvAsDuration("PERSIST_DEBOUNCE", time.Second),
			SnapshotCap:          getEnvAsInt("SNAPSHOT_CAP", 50),
			ProactiveByDefault:   getEnvAsBool("PROACTIVE_BY_DEFAULT", false),
			PersistTopic:         getEnv("PERSIST_TOPIC_NAME", "PERSIST_DOCUMENT"),
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

// getEnvAsDuration accepts Go duration strings ("5s", "1500ms").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
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
