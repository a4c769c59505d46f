package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// DefaultAPIURL is where the worker listens in development.
const DefaultAPIURL = "http://localhost:8787"

type Config struct {
	Port  string
	GoEnv string

	DatabaseDriver string
	DatabaseURL    string
	MongoURI       string
	Database       string
	TodoCollection string

	CORSOrigins     string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Load reads the server configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            GetEnv("PORT", "8787"),
		GoEnv:           GetEnv("GO_ENV", "development"),
		DatabaseDriver:  strings.ToLower(GetEnv("DATABASE_DRIVER", DriverSQLite)),
		DatabaseURL:     GetEnv("DATABASE_URL", "file:todos.db?_foreign_keys=on"),
		MongoURI:        GetEnv("MONGODB_URI", ""),
		Database:        GetEnv("DATABASE", ""),
		TodoCollection:  GetEnv("TODO_COLLECTION", "todos"),
		CORSOrigins:     GetEnv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000"),
		RateLimitMax:    20,
		RateLimitWindow: 30 * time.Second,
	}

	if v := GetEnv("RATE_LIMIT_MAX", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_MAX %q", v)
		}
		cfg.RateLimitMax = n
	}
	if v := GetEnv("RATE_LIMIT_WINDOW", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q", v)
		}
		cfg.RateLimitWindow = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("you must set your 'DATABASE_URL' environmental variable for driver %s", c.DatabaseDriver)
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("you must set your 'MONGODB_URI' environmental variable. See\n\t https://www.mongodb.com/docs/drivers/go/current/usage-examples/#environment-variable")
		}
		if c.Database == "" {
			return fmt.Errorf("you must set your 'DATABASE' environmental variable")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	return nil
}

// Addr is the listen address for fiber.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// ClientConfig is what todoctl needs to reach the worker.
type ClientConfig struct {
	APIURL string
	Token  string
}

func LoadClient() ClientConfig {
	return ClientConfig{
		APIURL: GetEnv("TODO_API_URL", DefaultAPIURL),
		Token:  GetEnv("TODO_API_TOKEN", ""),
	}
}
