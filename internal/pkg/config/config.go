package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Security settings and values that differ between environments
// - default: Values common across all environments, standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	Demo   DemoUserConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

// StoreConfig selects the coupon store backend. The in-memory store needs no
// configuration; the postgres store requires a DSN.
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"memory"`
	DSN    string `envconfig:"STORE_DSN" default:""`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// DemoUserConfig is the single hardcoded credential pair accepted by the
// login stub.
type DemoUserConfig struct {
	Email    string `envconfig:"DEMO_USER_EMAIL" default:"hire-me@anshumat.org"`
	Password string `envconfig:"DEMO_USER_PASSWORD" default:"HireMe@2025!"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver: "memory",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Demo: DemoUserConfig{
			Email:    "hire-me@anshumat.org",
			Password: "HireMe@2025!",
		},
	}
}
