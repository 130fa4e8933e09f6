package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds the settings read once at startup.
type Config struct {
	Port            string
	Env             string
	StoreDriver     string
	MongoURI        string
	MongoDatabase   string
	DatabaseDSN     string
	RabbitMQURL     string
	RabbitMQQueue   string
	ConsumeEvents   bool
	LegacyResponses bool
	PublicDir       string
	ViewsDir        string
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// IsProduction reports whether APP_ENV selects production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// EventsEnabled reports whether a message broker is configured.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "exercisetracker")
	v.SetDefault("DATABASE_DSN", "file:exercisetracker.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "exercise_events")
	v.SetDefault("EVENTS_CONSUME", false)
	v.SetDefault("LEGACY_RESPONSES", false)
	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("VIEWS_DIR", "views")
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from v and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("PORT"),
		Env:             strings.ToLower(v.GetString("APP_ENV")),
		StoreDriver:     strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:        v.GetString("MONGO_URI"),
		MongoDatabase:   v.GetString("MONGO_DATABASE"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:   v.GetString("RABBITMQ_QUEUE"),
		ConsumeEvents:   v.GetBool("EVENTS_CONSUME"),
		LegacyResponses: v.GetBool("LEGACY_RESPONSES"),
		PublicDir:       v.GetString("PUBLIC_DIR"),
		ViewsDir:        v.GetString("VIEWS_DIR"),
	}

	switch cfg.StoreDriver {
	case DriverMongo, DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == DriverMongo && cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required for the %s driver", DriverMongo)
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT must not be empty")
	}
	return cfg, nil
}
