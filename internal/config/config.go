package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database driver constants
const (
	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverMongoDB  = "mongodb"
)

// User cache type constants
const (
	UserCacheTypeMemory     = "memory"
	UserCacheTypeRedis      = "redis"
	UserCacheTypeRedisAside = "redis-aside"
)

// Log format constants
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// MinBcryptCost is the lowest accepted work factor for password hashing.
const MinBcryptCost = 10

// DefaultFeaturedQueries is the curated set of catalog searches backing /api/featured.
var DefaultFeaturedQueries = []string{
	"Gameboy Katseye",
	"Opalite Taylor Swift",
	"I Just Might Bruno Mars",
	"Purple Rain Prince",
	"Multo Cup Of Joe",
	"back to friends sombr",
	"Where is my husband Raye",
	"CHANEL Tyla",
}

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string
	FrontendURL  string // Allowed CORS origin and OAuth redirect target
	IsProduction bool
	MaxBodyBytes int64

	// JWT settings
	JWTSecret     string
	JWTExpiration time.Duration

	// Account settings
	AdminEmail string // Google logins with this email are promoted to admin
	BcryptCost int

	// Session settings (OAuth state only)
	SessionSecret string

	// Database
	DatabaseDriver string // "sqlite", "postgres" or "mongodb"
	DatabaseDSN    string // Database connection string (DSN, path or mongodb URI)
	MongoDatabase  string

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
	OAuthTimeout       time.Duration

	// Catalog (iTunes Search API)
	CatalogBaseURL       string
	CatalogTimeout       time.Duration
	CatalogMaxRetries    int
	CatalogRetryDelay    time.Duration
	CatalogMaxRetryDelay time.Duration
	FeaturedCacheTTL     time.Duration
	FeaturedQueries      []string

	// User cache
	UserCacheType        string
	UserCacheTTL         time.Duration
	UserCacheClientTTL   time.Duration // Client-side TTL for redis-aside
	UserCacheSizePerConn int           // MB per connection for redis-aside

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Metrics
	MetricsEnabled             bool
	MetricsToken               string
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Domain events
	KafkaBrokers []string
	KafkaTopic   string

	// Timeouts
	DBInitTimeout         time.Duration
	CacheInitTimeout      time.Duration
	ServerShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", DatabaseDriverSQLite)
	var dsn string
	switch driver {
	case DatabaseDriverSQLite:
		dsn = getEnv("DATABASE_DSN", "echo.db")
	case DatabaseDriverMongoDB:
		dsn = getEnv("DATABASE_DSN", getEnv("MONGO_URI", "mongodb://localhost:27017"))
	default:
		dsn = getEnv("DATABASE_DSN", "")
	}

	// PORT is honoured for platforms that only inject a port number
	serverAddr := getEnv("SERVER_ADDR", "")
	if serverAddr == "" {
		serverAddr = ":" + getEnv("PORT", "5000")
	}

	return &Config{
		ServerAddr:   serverAddr,
		BaseURL:      getEnv("BASE_URL", "http://localhost:5000"),
		FrontendURL:  strings.TrimSuffix(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		IsProduction: getEnv("ENVIRONMENT", "") == "production",
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 10<<20)),

		JWTSecret:     getEnv("JWT_SECRET", "your-256-bit-secret-change-in-production"),
		JWTExpiration: getEnvDuration("JWT_EXPIRATION", 720*time.Hour), // 30 days

		AdminEmail: strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
		BcryptCost: getEnvInt("BCRYPT_COST", MinBcryptCost),

		SessionSecret: getEnv("SESSION_SECRET", "session-secret-change-in-production"),

		DatabaseDriver: driver,
		DatabaseDSN:    dsn,
		MongoDatabase:  getEnv("MONGO_DATABASE", "echo"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL: getEnv(
			"GOOGLE_CALLBACK_URL",
			"http://localhost:5000/api/auth/google/callback",
		),
		OAuthTimeout: getEnvDuration("OAUTH_TIMEOUT", 15*time.Second),

		CatalogBaseURL:       strings.TrimSuffix(getEnv("CATALOG_BASE_URL", "https://itunes.apple.com"), "/"),
		CatalogTimeout:       getEnvDuration("CATALOG_TIMEOUT", 10*time.Second),
		CatalogMaxRetries:    getEnvInt("CATALOG_MAX_RETRIES", 2),
		CatalogRetryDelay:    getEnvDuration("CATALOG_RETRY_DELAY", 500*time.Millisecond),
		CatalogMaxRetryDelay: getEnvDuration("CATALOG_MAX_RETRY_DELAY", 5*time.Second),
		FeaturedCacheTTL:     getEnvDuration("CATALOG_FEATURED_TTL", 10*time.Minute),
		FeaturedQueries:      getEnvSlice("CATALOG_FEATURED_QUERIES", DefaultFeaturedQueries),

		UserCacheType:        getEnv("USER_CACHE_TYPE", UserCacheTypeMemory),
		UserCacheTTL:         getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		UserCacheClientTTL:   getEnvDuration("USER_CACHE_CLIENT_TTL", 30*time.Second),
		UserCacheSizePerConn: getEnvInt("USER_CACHE_SIZE_PER_CONN", 32),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MetricsEnabled:             getEnvBool("METRICS_ENABLED", false),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 5*time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", LogFormatConsole),

		KafkaBrokers: getEnvSlice("KAFKA_BROKERS", nil),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "echo.events"),

		DBInitTimeout:         getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),
		CacheInitTimeout:      getEnvDuration("CACHE_INIT_TIMEOUT", 5*time.Second),
		ServerShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DatabaseDriverSQLite, DatabaseDriverPostgres, DatabaseDriverMongoDB:
	default:
		return fmt.Errorf(
			"invalid DATABASE_DRIVER value: %q (must be %q, %q or %q)",
			c.DatabaseDriver,
			DatabaseDriverSQLite,
			DatabaseDriverPostgres,
			DatabaseDriverMongoDB,
		)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required when DATABASE_DRIVER=%s", c.DatabaseDriver)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWTExpiration)
	}
	if c.BcryptCost < MinBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be at least %d, got %d", MinBcryptCost, c.BcryptCost)
	}

	switch c.UserCacheType {
	case UserCacheTypeMemory:
	case UserCacheTypeRedis, UserCacheTypeRedisAside:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when USER_CACHE_TYPE=%s", c.UserCacheType)
		}
	default:
		return fmt.Errorf(
			"invalid USER_CACHE_TYPE value: %q (must be %q, %q or %q)",
			c.UserCacheType,
			UserCacheTypeMemory,
			UserCacheTypeRedis,
			UserCacheTypeRedisAside,
		)
	}
	if c.UserCacheTTL <= 0 {
		return fmt.Errorf("USER_CACHE_TTL must be positive, got %s", c.UserCacheTTL)
	}

	if c.MetricsEnabled && c.MetricsGaugeUpdateEnabled && c.MetricsGaugeUpdateInterval <= 0 {
		return fmt.Errorf(
			"METRICS_GAUGE_UPDATE_INTERVAL must be positive, got %s",
			c.MetricsGaugeUpdateInterval,
		)
	}

	switch c.LogFormat {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf(
			"invalid LOG_FORMAT value: %q (must be %q or %q)",
			c.LogFormat,
			LogFormatJSON,
			LogFormatConsole,
		)
	}

	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return nil
}

// GoogleOAuthEnabled reports whether Google login has credentials configured.
func (c *Config) GoogleOAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		if parts := splitAndTrim(value, ","); len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
