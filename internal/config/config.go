package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Port        string
	Environment string
	AppId       string
	MongoURI    string
	DBName      string

	JWTSecret string
	JWTExpiry time.Duration
	SkipAuth  bool

	CORSOrigins string
	BodyLimitMB int

	StorageDriver string
	FSPath        string // Physical directory for file uploads
	FSURL         string // URL path prefix for file access
	S3            S3Config

	Log  LogConfig
	SMTP SMTPConfig

	OrphanSweepSchedule string
	OrphanGracePeriod   time.Duration
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	BaseURL   string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	ToDB       bool
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	NotifyEmail string
}

// Enabled reports whether outgoing mail is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.NotifyEmail != ""
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "invest-portal"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "invest-portal"),

		JWTSecret: getEnv("JWT_SECRET", "secret"),
		JWTExpiry: getDuration("JWT_EXPIRY", time.Hour),
		SkipAuth:  getBool("SKIP_AUTH", false),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173"),
		BodyLimitMB: getInt("BODY_LIMIT_MB", 50),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageLocal)),
		FSPath:        getEnv("FS_PATH", "./uploads"),
		FSURL:         getEnv("FS_URL", "/uploads"),
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Region:    getEnv("S3_REGION", "auto"),
			Bucket:    getEnv("S3_BUCKET", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			BaseURL:   getEnv("S3_BASE_URL", ""),
		},

		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getInt("LOG_MAX_AGE_DAYS", 30),
			Compress:   getBool("LOG_COMPRESS", true),
			ToDB:       getBool("LOG_TO_DB", false),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USER", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			From:        getEnv("SMTP_FROM", "no-reply@localhost"),
			NotifyEmail: getEnv("CONTACT_NOTIFY_EMAIL", ""),
		},

		OrphanSweepSchedule: getEnv("ORPHAN_SWEEP_SCHEDULE", "0 3 * * *"),
		OrphanGracePeriod:   getDuration("ORPHAN_GRACE_PERIOD", time.Hour),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the storage layer cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageLocal:
		if c.FSPath == "" {
			return fmt.Errorf("FS_PATH is required for local storage")
		}
	case StorageS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if !strings.HasPrefix(c.FSURL, "/") {
		return fmt.Errorf("FS_URL must start with '/'")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
