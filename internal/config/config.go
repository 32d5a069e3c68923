package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Supported values for DBDriver
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Supported values for SessionStore
const (
	SessionStoreRedis  = "redis"
	SessionStoreCookie = "cookie"
)

type Config struct {
	HTTPAddress string `yaml:"http_address" env:"HTTP_ADDRESS" env-default:":8080"`
	GinMode     string `yaml:"gin_mode" env:"GIN_MODE" env-default:"debug"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Timezone    string `yaml:"timezone" env:"APP_TIMEZONE" env-default:"UTC"`

	DBDriver   string `yaml:"db_driver" env:"DB_DRIVER" env-default:"mysql"`
	DBHost     string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort     string `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBUser     string `yaml:"db_user" env:"DB_USER" env-default:"taskuser"`
	DBPassword string `yaml:"db_password" env:"DB_PASSWORD" env-default:"taskpassword"`
	DBName     string `yaml:"db_name" env:"DB_NAME" env-default:"supertask"`
	DBPath     string `yaml:"db_path" env:"DB_PATH" env-default:"supertask.db"`

	SessionStore  string `yaml:"session_store" env:"SESSION_STORE" env-default:"redis"`
	RedisHost     string `yaml:"redis_host" env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `yaml:"redis_port" env:"REDIS_PORT" env-default:"6379"`
	SessionSecret string `yaml:"session_secret" env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`

	JWTSecret      string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"default-jwt-secret-change-me"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"1h"`

	QuoteURL     string        `yaml:"quote_url" env:"QUOTE_URL" env-default:"https://api.quotable.io/quotes/random"`
	QuoteTimeout time.Duration `yaml:"quote_timeout" env:"QUOTE_TIMEOUT" env-default:"10s"`
}

// Load reads configuration from an optional .env file, an optional YAML file and
// the environment. Environment variables win over the YAML file.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
		return &cfg, cfg.validate()
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return nil, fmt.Errorf("read config %q: %w", configPath, err)
		}
		// missing file: environment only
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	}

	return &cfg, cfg.validate()
}

// Location returns the time zone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.SessionStore {
	case SessionStoreRedis, SessionStoreCookie:
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	if c.QuoteTimeout <= 0 {
		return fmt.Errorf("QUOTE_TIMEOUT must be positive")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}

	return nil
}
