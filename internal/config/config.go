package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	OTP      OTPConfig
	Storage  StorageConfig
	Mail     MailConfig
	AI       AIConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
	LogFormat   string
}

type DatabaseConfig struct {
	// Driver selects the connection adapter: "pgx" (pool, default) or "stdlib".
	Driver     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	ListTTL  time.Duration
}

type OTPConfig struct {
	TTL time.Duration
}

type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type MailConfig struct {
	Region string
	From   string
}

// AIConfig enables natural-language student search. An empty APIKey
// disables it.
type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func (a AIConfig) Enabled() bool { return a.APIKey != "" }

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    opt("LOG_LEVEL", "info"),
		LogFormat:   opt("LOG_FORMAT", "json"),
	}

	cfg.Database = DatabaseConfig{
		Driver:          opt("DB_DRIVER", "pgx"),
		DBHost:          opt("DB_HOST", "localhost"),
		DBPort:          opt("DB_PORT", "5432"),
		DBName:          req("DB_NAME"),
		DBUser:          req("DB_USER"),
		DBPassword:      opt("DB_PASSWORD", ""),
		DBSSLMode:       opt("DB_SSL_MODE", "disable"),
		MaxConns:        int32(optInt("DB_MAX_CONNS", 10)),
		MinConns:        int32(optInt("DB_MIN_CONNS", 0)),
		MaxConnLifetime: optDuration("DB_MAX_CONN_LIFETIME", time.Hour),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       optInt("REDIS_DB", 0),
		ListTTL:  optDuration("REDIS_LIST_TTL", 60*time.Second),
	}

	cfg.OTP = OTPConfig{
		TTL: optDuration("OTP_TTL", 10*time.Minute),
	}

	cfg.Storage = StorageConfig{
		Bucket:        opt("S3_BUCKET", ""),
		Region:        opt("S3_REGION", "us-east-1"),
		Endpoint:      opt("S3_ENDPOINT", ""),
		AccessKey:     opt("S3_ACCESS_KEY", ""),
		SecretKey:     opt("S3_SECRET_KEY", ""),
		PublicBaseURL: opt("S3_PUBLIC_BASE_URL", ""),
	}

	cfg.Mail = MailConfig{
		Region: opt("SES_REGION", cfg.Storage.Region),
		From:   opt("MAIL_FROM", ""),
	}

	cfg.AI = AIConfig{
		APIKey:  opt("GEMINI_API_KEY", ""),
		Model:   opt("AI_MODEL", "gemini-2.5-flash"),
		BaseURL: opt("AI_BASE_URL", ""),
		Timeout: optDuration("AI_TIMEOUT", 15*time.Second),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// DSN builds a libpq style connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		d.DBHost, d.DBPort, d.DBName, d.DBUser, d.DBPassword, d.DBSSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, "production")
}
