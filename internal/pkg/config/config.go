package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// DemoPassword is the password of seeded accounts and of accounts
	// created without one.
	DemoPassword string `env:"DEMO_PASSWORD, default=password"`

	// StoreDriver selects the domain store backend: memory or mongo.
	StoreDriver     string `env:"STORE_DRIVER,     default=memory"`
	ActivityWorkers int    `env:"ACTIVITY_WORKERS, default=8"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Client  ClientConfig
	Session SessionConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=backoffice"`
}

// RedisConfig is optional: an empty Addr disables Redis.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ClientConfig drives the command-line client's transport.
type ClientConfig struct {
	// APIURL selects the HTTP transport when set, e.g.
	// http://localhost:8080/api. Otherwise the client runs against an
	// in-process store.
	APIURL     string        `env:"API_URL"`
	LatencyMin time.Duration `env:"LATENCY_MIN, default=0s"`
	LatencyMax time.Duration `env:"LATENCY_MAX, default=0s"`
}

type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND, default=file"`
	File    string `env:"SESSION_FILE"`
}

const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"

	SessionFile  = "file"
	SessionRedis = "redis"
)

// Load reads configuration from environment variables using go-envconfig.
// In development a .env file in the working directory is loaded first.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "development" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for process entry points.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.Session.Backend {
	case SessionFile, SessionRedis:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Session.Backend == SessionRedis && c.Redis.Addr == "" {
		return errors.New("config: SESSION_BACKEND=redis requires REDIS_ADDR")
	}
	if c.Client.LatencyMax < c.Client.LatencyMin {
		return errors.New("config: LATENCY_MAX must not be below LATENCY_MIN")
	}
	if c.Env == "production" && c.JWTSecret == "dev-secret-change-me" {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }
