package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/medicore/hms-api/internal/cache"
	"github.com/medicore/hms-api/internal/email"
	"github.com/medicore/hms-api/internal/repository/postgres"
)

type ServerConfig struct {
	Port           int           `mapstructure:"port" envconfig:"SERVER_PORT"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" envconfig:"SERVER_REQUEST_TIMEOUT"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes" envconfig:"SERVER_MAX_HEADER_BYTES"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT"`
	User     string `mapstructure:"user" envconfig:"DB_USER"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type JWTConfig struct {
	Secret        string        `mapstructure:"secret" envconfig:"JWT_SECRET"`
	RefreshSecret string        `mapstructure:"refresh_secret" envconfig:"JWT_REFRESH_SECRET"`
	Expiry        time.Duration `mapstructure:"expiry" envconfig:"JWT_EXPIRY"`
	RefreshExpiry time.Duration `mapstructure:"refresh_expiry" envconfig:"JWT_REFRESH_EXPIRY"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url" envconfig:"REDIS_URL"`
	MaxRetries   int           `mapstructure:"max_retries" envconfig:"REDIS_MAX_RETRIES"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff" envconfig:"REDIS_RETRY_BACKOFF"`
	PoolSize     int           `mapstructure:"pool_size" envconfig:"REDIS_POOL_SIZE"`
	MinIdleConns int           `mapstructure:"min_idle_conns" envconfig:"REDIS_MIN_IDLE_CONNS"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled" envconfig:"SMTP_ENABLED"`
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled" envconfig:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

type BootstrapConfig struct {
	AdminUsername string `mapstructure:"admin_username" envconfig:"BOOTSTRAP_ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"admin_password" envconfig:"BOOTSTRAP_ADMIN_PASSWORD"`
	SeedCatalog   bool   `mapstructure:"seed_catalog" envconfig:"BOOTSTRAP_SEED_CATALOG"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	Security  struct {
		AllowedOrigins []string `mapstructure:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	} `mapstructure:"security"`
	LogLevel  string `mapstructure:"log_level" envconfig:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"log_pretty" envconfig:"LOG_PRETTY"`
}

// LoadConfig reads config.yml and applies environment overrides.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	config := defaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, the environment can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return config, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 10 * time.Second
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Server.MaxHeaderBytes = 1 << 20
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.SSLMode = "disable"
	cfg.JWT.Expiry = 24 * time.Hour
	cfg.JWT.RefreshExpiry = 7 * 24 * time.Hour
	cfg.Redis.URL = "redis://localhost:6379/0"
	cfg.Redis.PoolSize = 10
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 50
	cfg.RateLimit.Burst = 100
	cfg.Bootstrap.AdminUsername = "admin"
	cfg.Bootstrap.SeedCatalog = true
	cfg.LogLevel = "info"
	return cfg
}

func (c *DatabaseConfig) ToPostgresConfig() postgres.Config {
	return postgres.Config{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Name:     c.Name,
		SSLMode:  c.SSLMode,
	}
}

func (c *RedisConfig) ToCacheConfig() cache.Config {
	return cache.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}

func (c *SMTPConfig) ToEmailConfig() email.SMTPConfig {
	return email.SMTPConfig{
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
		From:     c.From,
	}
}
