package config

import (
	"os"
	"strconv"
	"time"

	units "github.com/docker/go-units"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds bearer-token verification settings.
// JWKSURL points at the identity provider's JSON Web Key Set endpoint.
type AuthConfig struct {
	JWKSURL string
}

// UploadConfig bounds a single upload batch.
// MaxFileSize accepts human-readable sizes ("500MB") or plain byte counts.
type UploadConfig struct {
	MaxFileSize int64
	MaxFiles    int
	PresignTTL  time.Duration
}

// CronConfig guards and tunes the cleanup job.
// Retention is how long a soft-deleted document survives before permanent
// removal; PendingTTL is how long an unpromoted pending-upload marker may
// live before its blob is considered orphaned.
type CronConfig struct {
	Secret     string
	Retention  time.Duration
	PendingTTL time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env      string
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Cron     CronConfig
}

// Production reports whether the service runs with production hardening
// (cron secret enforcement) enabled.
func (c *AppConfig) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Env:     getEnv("APP_ENV", "development"),
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWKSURL: getEnv("AUTH_JWKS_URL", ""),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvSize("MAX_FILE_SIZE", 500*1024*1024),
			MaxFiles:    getEnvInt("MAX_FILES_PER_UPLOAD", 10),
			PresignTTL:  getEnvDuration("PREVIEW_URL_TTL", 15*time.Minute),
		},
		Cron: CronConfig{
			Secret:     getEnv("CRON_SECRET", ""),
			Retention:  getEnvDuration("CLEANUP_RETENTION", 10*time.Minute),
			PendingTTL: getEnvDuration("CLEANUP_PENDING_TTL", 24*time.Hour),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvSize parses human-readable byte sizes such as "500MB" or "5GiB".
// Plain integers are taken as bytes.
func getEnvSize(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		n, err := units.RAMInBytes(v)
		if err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d > 0 {
			return d
		}
	}
	return def
}
