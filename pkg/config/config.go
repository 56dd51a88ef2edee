package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultShareSecret = "your-share-secret-change-in-production"

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Share     ShareConfig
	OTP       OTPConfig
	Sentiment SentimentConfig
	AI        AIConfig
	Email     EmailConfig
	Assembly  AssemblyAIConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
	PublicBaseURL   string
	MaxUploadBytes  int64
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxConns      int
	MinConns      int
	AutoMigrate   bool
	MigrationsDir string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
}

// ShareConfig holds share link signing configuration
type ShareConfig struct {
	Secret string
	Expiry time.Duration
}

// OTPConfig holds one-time password configuration
type OTPConfig struct {
	Expiry    time.Duration
	Length    int
	RateLimit float64 // requests per second per client on OTP routes
}

// SentimentConfig holds sentiment display and fallback configuration
type SentimentConfig struct {
	Fallback     string // "vader" or "neutral"
	NeutralColor string
}

// AIConfig holds LLM provider configuration
type AIConfig struct {
	Provider      string        `envconfig:"AI_PROVIDER" default:"gemini"`
	GeminiAPIKey  string        `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	GeminiBaseURL string        `envconfig:"GEMINI_API_URL" default:"https://generativelanguage.googleapis.com"`
	GroqAPIKey    string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL   string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	GroqModel     string        `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	Timeout       time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	ChunkCharSize int           `envconfig:"CHUNK_CHAR_SIZE" default:"12000"`
}

// EmailConfig holds transactional email configuration
type EmailConfig struct {
	SendGridAPIKey string `envconfig:"SENDGRID_API_KEY"`
	SendGridURL    string `envconfig:"SENDGRID_API_URL" default:"https://api.sendgrid.com"`
	From           string `envconfig:"EMAIL_FROM" default:"no-reply@meetly.ai"`
	FromName       string `envconfig:"EMAIL_FROM_NAME" default:"Meetly.AI Dashboard"`
}

// AssemblyAIConfig holds audio transcription configuration
type AssemblyAIConfig struct {
	APIKey       string `envconfig:"ASSEMBLYAI_API_KEY"`
	LanguageCode string `envconfig:"ASSEMBLYAI_LANGUAGE" default:"en"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", "*"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
			PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
			MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_BYTES", 25<<20)),
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			Name:          getEnv("DB_NAME", "meetly"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			MaxConns:      getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:      getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate:   getEnvAsBool("DB_AUTO_MIGRATE", false),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "migrations"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "meetly-transcripts"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		},
		Share: ShareConfig{
			Secret: getEnv("SHARE_SECRET", defaultShareSecret),
			Expiry: getEnvAsDuration("SHARE_EXPIRY", "168h"),
		},
		OTP: OTPConfig{
			Expiry:    getEnvAsDuration("OTP_EXPIRY", "5m"),
			Length:    getEnvAsInt("OTP_LENGTH", 6),
			RateLimit: getEnvAsFloat("OTP_RATE_LIMIT", 1),
		},
		Sentiment: SentimentConfig{
			Fallback:     strings.ToLower(getEnv("SENTIMENT_FALLBACK", "vader")),
			NeutralColor: getEnv("SENTIMENT_NEUTRAL_COLOR", "#EAB308"),
		},
	}

	// Provider sections are declared with struct tags
	if err := envconfig.Process("", &config.AI); err != nil {
		return nil, fmt.Errorf("failed to load AI config: %w", err)
	}
	if err := envconfig.Process("", &config.Email); err != nil {
		return nil, fmt.Errorf("failed to load email config: %w", err)
	}
	if err := envconfig.Process("", &config.Assembly); err != nil {
		return nil, fmt.Errorf("failed to load AssemblyAI config: %w", err)
	}
	config.AI.Provider = strings.ToLower(config.AI.Provider)

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case "gemini":
		if c.AI.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER=gemini")
		}
	case "groq":
		if c.AI.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required when AI_PROVIDER=groq")
		}
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q (want gemini or groq)", c.AI.Provider)
	}

	switch c.Sentiment.Fallback {
	case "vader", "neutral":
	default:
		return fmt.Errorf("unsupported SENTIMENT_FALLBACK %q (want vader or neutral)", c.Sentiment.Fallback)
	}

	if c.AI.ChunkCharSize <= 0 {
		return fmt.Errorf("CHUNK_CHAR_SIZE must be positive")
	}
	if c.OTP.Length < 4 || c.OTP.Length > 10 {
		return fmt.Errorf("OTP_LENGTH must be between 4 and 10")
	}

	if c.IsProduction() && (c.Share.Secret == "" || c.Share.Secret == defaultShareSecret) {
		return fmt.Errorf("SHARE_SECRET must be set in production")
	}
	return nil
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
