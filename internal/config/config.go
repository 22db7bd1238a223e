package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Roastery"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"roastery"`
		// URL takes precedence over the individual fields when set.
		URL     string `envconfig:"DATABASE_URL"`
		Migrate bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		// Secret verifies HS256 bearer tokens. Authentication is disabled when empty.
		Secret   string `envconfig:"JWT_SECRET"`
		Issuer   string `envconfig:"JWT_ISSUER"`
		Audience string `envconfig:"JWT_AUDIENCE"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}
}

func (c *Config) ConnectionString() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// LogLevel parses LOG_LEVEL, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo
	}

	return level
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// Client is the configuration of the terminal front end.
type Client struct {
	APIURL  string        `envconfig:"ROASTERY_API_URL" default:"http://localhost:8080"`
	Token   string        `envconfig:"ROASTERY_API_TOKEN"`
	Timeout time.Duration `envconfig:"ROASTERY_API_TIMEOUT" default:"10s"`
}

func LoadClient() (*Client, error) {
	var cfg Client
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process client config: %w", err)
	}

	return &cfg, nil
}
