package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Provide sane defaults for local development; the JWT secret is the one
// value without a default.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Database
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Redis (rate limiting; optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Object store (S3-compatible, e.g. MinIO)
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool

	// Session tokens
	JWTSecret string
	TokenTTL  time.Duration

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Migrations
	MigrationsDir string

	// Password hashing work factor
	BcryptCost int

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

// ErrMissingJWTSecret is returned by Validate when JWT_SECRET is unset.
// Running without a signing secret would make every issued token forgeable,
// so startup must abort instead.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required")

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "annonsera-api"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3010"),
		GinMode: getenv("GIN_MODE", "release"),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "ads_saas"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		S3Endpoint:     getenv("S3_ENDPOINT", "http://localhost:9000"),
		S3Region:       getenv("S3_REGION", "us-east-1"),
		S3Bucket:       getenv("S3_BUCKET", "assets"),
		S3AccessKey:    getenv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getenv("S3_SECRET_KEY", ""),
		S3UsePathStyle: getbool("S3_USE_PATH_STYLE", true),

		// No default: an unset secret is a fatal startup condition.
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getdur("TOKEN_TTL", 7*24*time.Hour),

		CookieDomain: getenv("COOKIE_DOMAIN", ""),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		BcryptCost: getint("BCRYPT_COST", 10),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// Validate checks startup-fatal misconfiguration.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
