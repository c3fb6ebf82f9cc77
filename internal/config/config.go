package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey         string   // API key for authentication
	TrustedProxies []string // proxies whose X-Forwarded-For is believed
	MaxUploadBytes int64    // request body cap for image uploads

	OCRBaseURL string
	OCRTimeout time.Duration

	ObjectStoreDir string
	DeadLetterPath string

	WorkerCount      int
	WorkerQueueSize  int
	RetryPollEvery   time.Duration
	RetryBatchSize   int
	JobMaxAttempts   int
	JobBackoffBase   time.Duration
	OperationTimeout time.Duration

	RecipeCacheSize int
	RecipeCacheTTL  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		Environment:    getEnv("ENVIRONMENT", "dev"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "recipevault"),
		APIKey:         getEnv("API_KEY", ""),
		OCRBaseURL:     getEnv("OCR_BASE_URL", "http://localhost:9090"),
		ObjectStoreDir: getEnv("OBJECT_STORE_DIR", "data/images"),
		DeadLetterPath: getEnv("DEAD_LETTER_PATH", "data/dead_letter.jsonl"),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = getEnvInt("WORKER_COUNT", 4); err != nil {
		return nil, err
	}
	if cfg.WorkerQueueSize, err = getEnvInt("WORKER_QUEUE_SIZE", 64); err != nil {
		return nil, err
	}
	if cfg.RetryBatchSize, err = getEnvInt("RETRY_BATCH_SIZE", 32); err != nil {
		return nil, err
	}
	if cfg.JobMaxAttempts, err = getEnvInt("JOB_MAX_ATTEMPTS", 3); err != nil {
		return nil, err
	}
	if cfg.RecipeCacheSize, err = getEnvInt("RECIPE_CACHE_SIZE", 256); err != nil {
		return nil, err
	}

	maxUpload, err := getEnvInt("MAX_UPLOAD_BYTES", 8<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	if cfg.OCRTimeout, err = getEnvDuration("OCR_TIMEOUT", 20*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryPollEvery, err = getEnvDuration("RETRY_POLL_EVERY", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.JobBackoffBase, err = getEnvDuration("JOB_BACKOFF_BASE", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.OperationTimeout, err = getEnvDuration("OPERATION_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RecipeCacheTTL, err = getEnvDuration("RECIPE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
