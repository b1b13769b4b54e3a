package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port        string        `env:"PORT,             default=8080"`
	Env         string        `env:"ENV,              default=development"`
	LogLevel    string        `env:"LOG_LEVEL,        default=info"`
	StoreDriver string        `env:"STORE_DRIVER,     default=mongo"`
	ShutdownIn  time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Keycloak KeycloakConfig
	JWT      JWTConfig
	Workers  WorkerConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=blog"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig is optional; an empty REDIS_ADDR disables the duplicate
// submission guard.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	GuardTTL time.Duration `env:"REDIS_GUARD_TTL, default=10m"`
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool { return strings.TrimSpace(c.Addr) != "" }

type KeycloakConfig struct {
	BaseURL       string        `env:"KEYCLOAK_URL,            default=http://localhost:8180"`
	Realm         string        `env:"KEYCLOAK_REALM,          default=blog"`
	ClientID      string        `env:"KEYCLOAK_CLIENT_ID"`
	ClientSecret  string        `env:"KEYCLOAK_CLIENT_SECRET"`
	AdminUser     string        `env:"KEYCLOAK_ADMIN_USER"`
	AdminPassword string        `env:"KEYCLOAK_ADMIN_PASSWORD"`
	AdminRealm    string        `env:"KEYCLOAK_ADMIN_REALM,    default=master"`
	Timeout       time.Duration `env:"KEYCLOAK_TIMEOUT,        default=10s"`
}

type JWTConfig struct {
	Secret       string `env:"JWT_SECRET"`
	PublicKeyPEM string `env:"JWT_PUBLIC_KEY"`
	AdminRole    string `env:"ADMIN_ROLE, default=admin"`
}

type WorkerConfig struct {
	Core       int           `env:"WORKERS_CORE,       default=4"`
	Max        int           `env:"WORKERS_MAX,        default=16"`
	QueueDepth int           `env:"WORKERS_QUEUE,      default=64"`
	KeepAlive  time.Duration `env:"WORKERS_KEEP_ALIVE, default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyPEM == "" {
		return fmt.Errorf("one of JWT_SECRET or JWT_PUBLIC_KEY is required")
	}
	if c.Keycloak.ClientSecret == "" && c.Keycloak.AdminUser == "" {
		return fmt.Errorf("KEYCLOAK_CLIENT_SECRET or KEYCLOAK_ADMIN_USER is required")
	}
	return nil
}

// Development reports whether the service runs outside production.
func (c *Config) Development() bool {
	return c.Env == "development" || c.Env == "dev"
}
