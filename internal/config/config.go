package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// ErrConfiguration marks a configuration problem that must stop the process at startup.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	OTP       OTPConfig
	Redis     RedisConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

// IsProduction reports whether detailed error messages must be hidden from clients.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Timeout  time.Duration
}

// Enabled reports whether an SMTP relay has been configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

const (
	OTPStoreMemory = "memory"
	OTPStoreRedis  = "redis"
)

type OTPConfig struct {
	Store         string
	TTL           time.Duration
	SweepInterval time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UsePathStyle  bool
	URLExpiry     time.Duration
	MaxImageBytes int64
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_TIMEOUT", "30s")
	v.SetDefault("OTP_STORE", OTPStoreMemory)
	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("OTP_SWEEP_INTERVAL", "0s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("IMAGE_URL_EXPIRY", "24h")
	v.SetDefault("MAX_IMAGE_BYTES", 5<<20)
	v.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	v.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"})
	v.SetDefault("CORS_MAX_AGE", int(12*time.Hour))
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(homeDir)
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        v.GetString("SERVER_PORT"),
			Host:        v.GetString("SERVER_HOST"),
			Environment: v.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
			Timeout:  v.GetDuration("SMTP_TIMEOUT"),
		},
		OTP: OTPConfig{
			Store:         v.GetString("OTP_STORE"),
			TTL:           v.GetDuration("OTP_TTL"),
			SweepInterval: v.GetDuration("OTP_SWEEP_INTERVAL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Storage: StorageConfig{
			Bucket:        v.GetString("S3_BUCKET"),
			Region:        v.GetString("S3_REGION"),
			Endpoint:      v.GetString("S3_ENDPOINT"),
			AccessKey:     v.GetString("S3_ACCESS_KEY"),
			SecretKey:     v.GetString("S3_SECRET_KEY"),
			UsePathStyle:  v.GetBool("S3_USE_PATH_STYLE"),
			URLExpiry:     v.GetDuration("IMAGE_URL_EXPIRY"),
			MaxImageBytes: v.GetInt64("MAX_IMAGE_BYTES"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   v.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: v.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   v.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   v.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           v.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

// Validate reports settings without which the server must not start.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("%w: JWT_SECRET is required", ErrConfiguration)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: DB_HOST and DB_NAME are required", ErrConfiguration)
	}
	switch c.OTP.Store {
	case OTPStoreMemory, OTPStoreRedis:
	default:
		return fmt.Errorf("%w: unknown OTP_STORE %q", ErrConfiguration, c.OTP.Store)
	}
	if c.OTP.TTL <= 0 {
		return fmt.Errorf("%w: OTP_TTL must be positive", ErrConfiguration)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
