package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration (MySQL record store)
	Database DatabaseConfig `json:"database"`

	// MongoDB Configuration (location telemetry store)
	Mongo MongoConfig `json:"mongo"`

	// Redis Configuration (rate limiting)
	Redis RedisConfig `json:"redis"`

	// Auth Configuration
	Auth AuthConfig `json:"auth"`

	// Transport/telemetry Configuration
	Transport TransportConfig `json:"transport"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoConfig contains MongoDB connection configuration
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`

	// Rate limit applied ahead of the realtime core: requests per window.
	RateLimit       int `json:"rate_limit"`
	RateLimitWindow int `json:"rate_limit_window"` // seconds
}

// AuthConfig contains bearer-token verification configuration
type AuthConfig struct {
	JWTSecret string `json:"-"`
	Issuer    string `json:"issuer"`
}

// TransportConfig contains vehicle telemetry configuration
type TransportConfig struct {
	// MinSampleInterval is the minimum spacing between accepted location
	// samples for one bus. Closer samples are dropped at ingestion.
	MinSampleInterval time.Duration `json:"min_sample_interval"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, console
}

// Load builds a Config from environment variables with development defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("MYSQL_HOST", "localhost"),
			Port:         getEnv("MYSQL_PORT", "3306"),
			Username:     getEnv("MYSQL_USER", "root"),
			Password:     getEnv("MYSQL_PASSWORD", ""),
			DatabaseName: getEnv("MYSQL_DATABASE", "campuslink"),
			MaxOpenConns: getEnvInt("MYSQL_MAX_OPEN_CONNS", 50),
			MaxIdleConns: getEnvInt("MYSQL_MAX_IDLE_CONNS", 10),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "campuslink"),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", "localhost:6379"),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvInt("REDIS_DB", 0),
			RateLimit:       getEnvInt("RATE_LIMIT_REQUESTS", 120),
			RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", "campuslink"),
		},
		Transport: TransportConfig{
			MinSampleInterval: time.Duration(getEnvInt("LOCATION_MIN_INTERVAL_SECONDS", 5)) * time.Second,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// DSN builds the MySQL connection string from the database section.
func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
