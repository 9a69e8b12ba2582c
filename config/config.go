package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	AppURL      string
	CORSOrigins []string

	// Database configuration. DBDriver is postgres or sqlite.
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTExpiry time.Duration

	// OpenAI compatible chat completion endpoint
	AIBaseURL string
	AIAPIKey  string
	AIModel   string
	AITimeout time.Duration

	// Credits policy
	WelcomeCredits int64
	GenerationCost int64
	MaxAdminGrant  int64
	AdminEmails    []string
	// LedgerLock selects the per-user ledger lock: memory or redis.
	LedgerLock string

	// Menu generation rate limit per user
	GenerateRateLimit  int
	GenerateRateWindow time.Duration

	// Optional image catalog override stored in S3
	AWSRegion          string
	ImageCatalogBucket string
	ImageCatalogKey    string

	// SMTP for newsletter mail
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	LogLevel  string
	LogFormat string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env == Development {
		loadDotEnv()
	}

	cfg := &Config{Environment: env}
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}
	if err := loadCommon(cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv reads local env files without overriding variables that are
// already set. Missing files are ignored.
func loadDotEnv() {
	for _, name := range []string{".env.local", ".env.development", ".env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

// loadCIConfig reads everything from environment variables.
func loadCIConfig(cfg *Config) {
	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBName = getEnv("DB_NAME", "bbqmenu")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" {
		cfg.DBPassword = os.Getenv("DB_PASSWORD")
	}
	cfg.JWTSecret = getEnv("TEST_JWT_SECRET", os.Getenv("JWT_SECRET"))
	cfg.RedisPassword = getEnv("TEST_REDIS_PASSWORD", os.Getenv("REDIS_PASSWORD"))
	cfg.RedisURL = getEnv("TEST_REDIS_URL", os.Getenv("REDIS_URL"))
}

// loadDevConfig prefers environment variables and falls back to Docker
// secrets, then to local defaults.
func loadDevConfig(cfg *Config) {
	cfg.DBDriver = lookup("DB_DRIVER", "db_driver", "sqlite")
	cfg.DBHost = lookup("DB_HOST", "db_host", "localhost")
	cfg.DBPort = lookup("DB_PORT", "db_port", "5432")
	cfg.DBUser = lookup("DB_USER", "db_user", "postgres")
	cfg.DBPassword = lookup("DB_PASSWORD", "db_password", "")
	cfg.DBName = lookup("DB_NAME", "db_name", "bbqmenu")
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisURL = lookup("REDIS_URL", "redis_url", "")

	defaultSecret := ""
	if cfg.Environment == Test {
		defaultSecret = "test-secret"
	}
	cfg.JWTSecret = lookup("JWT_SECRET", "jwt_secret", defaultSecret)
}

// loadProdConfig reads credentials from Docker secrets only.
func loadProdConfig(cfg *Config) {
	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DBHost = lookup("DB_HOST", "db_host", "")
	cfg.DBPort = lookup("DB_PORT", "db_port", "5432")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = lookup("DB_NAME", "db_name", "")
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "db_ssl_mode", "require")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = lookup("REDIS_URL", "redis_url", "")
	cfg.JWTSecret = readSecret("jwt_secret")
}

// loadCommon fills settings that behave the same in every environment.
func loadCommon(cfg *Config) error {
	cfg.ServerPort = lookup("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = lookup("SERVER_HOST", "server_host", "0.0.0.0")
	cfg.AppURL = getEnv("APP_URL", "http://localhost:3000")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	cfg.SQLitePath = getEnv("SQLITE_PATH", "bbqmenu.db")

	cfg.RedisHost = lookup("REDIS_HOST", "redis_host", "localhost")
	cfg.RedisPort = lookup("REDIS_PORT", "redis_port", "6379")

	cfg.AIBaseURL = getEnv("AI_BASE_URL", "https://api.deepseek.com/v1")
	cfg.AIAPIKey = lookup("AI_API_KEY", "ai_api_key", "")
	if cfg.AIAPIKey == "" {
		cfg.AIAPIKey = readFileEnv("AI_API_KEY_FILE")
	}
	cfg.AIModel = getEnv("AI_MODEL", "deepseek-chat")

	cfg.AdminEmails = splitList(os.Getenv("ADMIN_EMAILS"))
	cfg.LedgerLock = getEnv("LEDGER_LOCK", "memory")

	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")
	cfg.ImageCatalogBucket = os.Getenv("IMAGE_CATALOG_BUCKET")
	cfg.ImageCatalogKey = getEnv("IMAGE_CATALOG_KEY", "images/catalog.toml")

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = getEnv("SMTP_PORT", "587")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = lookup("SMTP_PASSWORD", "smtp_password", "")
	cfg.SMTPFrom = getEnv("SMTP_FROM", "BBQ Menu AI <noreply@bbqmenu.ai>")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")
	if cfg.Environment == Development {
		cfg.LogFormat = getEnv("LOG_FORMAT", "console")
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return err
	}
	if cfg.JWTExpiry, err = getDuration("JWT_EXPIRY", 24*time.Hour); err != nil {
		return err
	}
	if cfg.AITimeout, err = getDuration("AI_TIMEOUT", 60*time.Second); err != nil {
		return err
	}
	if cfg.GenerateRateWindow, err = getDuration("GENERATE_RATE_WINDOW", time.Minute); err != nil {
		return err
	}
	if cfg.GenerateRateLimit, err = getInt("GENERATE_RATE_LIMIT", 5); err != nil {
		return err
	}
	welcome, err := getInt("WELCOME_CREDITS", 3)
	if err != nil {
		return err
	}
	cost, err := getInt("GENERATION_COST", 1)
	if err != nil {
		return err
	}
	maxGrant, err := getInt("MAX_ADMIN_GRANT", 10000)
	if err != nil {
		return err
	}
	cfg.WelcomeCredits, cfg.GenerationCost, cfg.MaxAdminGrant = int64(welcome), int64(cost), int64(maxGrant)
	return nil
}

// PostgresDSN builds the connection string for lib/pq and the gorm driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// IsAdmin reports whether email is on the admin allow-list.
func (c *Config) IsAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range c.AdminEmails {
		if strings.ToLower(a) == email && email != "" {
			return true
		}
	}
	return false
}

// lookup returns the environment variable, then the Docker secret, then def.
func lookup(envName, secretName, def string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return def
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func getInt(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func getDuration(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readFileEnv reads the file named by the environment variable name.
func readFileEnv(name string) string {
	path := os.Getenv(name)
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
