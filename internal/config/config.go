package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all configuration for the web client.
type Config struct {
	DB                     DBConfig
	Redis                  RedisConfig
	Catalog                CatalogConfig
	Session                SessionConfig
	Port                   string
	RateLimitMax           int
	RateLimitWindowSeconds int
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CatalogConfig locates the remote catalog service.
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls browser session storage.
type SessionConfig struct {
	Store        string
	TTL          time.Duration
	CookieSecure bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	rateLimitMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "60"))
	rateLimitWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	catalogTimeout, _ := strconv.Atoi(getEnv("CATALOG_TIMEOUT_SECONDS", "15"))
	sessionTTL, _ := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "720"))
	cookieSecure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))

	cfg := &Config{
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "movie_fe"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("BASE_URL", "http://localhost:8000"),
			Timeout: time.Duration(catalogTimeout) * time.Second,
		},
		Session: SessionConfig{
			Store:        getEnv("SESSION_STORE", StoreMemory),
			TTL:          time.Duration(sessionTTL) * time.Minute,
			CookieSecure: cookieSecure,
		},
		Port:                   getEnv("SERVER_PORT", "8501"),
		RateLimitMax:           rateLimitMax,
		RateLimitWindowSeconds: rateLimitWindow,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case StoreMemory, StorePostgres:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("SESSION_STORE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT_SECONDS must be positive")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be a positive integer")
	}
	if c.RateLimitWindowSeconds <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be a positive integer")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
