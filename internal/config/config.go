package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Store    StoreConfig    `envPrefix:"STORE_"`
	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	AMQP     AMQPConfig     `envPrefix:"AMQP_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	Checkout CheckoutConfig `envPrefix:"CHECKOUT_"`
	Cache    CacheConfig    `envPrefix:"CACHE_"`
	LogLevel string         `env:"LOG_LEVEL" envDefault:"info"`
	SeedDemo bool           `env:"SEED_DEMO" envDefault:"true"`
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"localhost"`
	Port int    `env:"PORT" envDefault:"8080"`
}

type StoreConfig struct {
	Driver string `env:"DRIVER" envDefault:"memory"`
}

type PostgresConfig struct {
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"DB"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"MAX_CONNS" envDefault:"10"`
}

// DSN renders the connection URL for pgxpool.
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// RedisConfig is optional. An empty Addr disables caching, pub/sub, rate
// limiting and idempotency keys.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// AMQPConfig is optional. An empty URL disables receipt mailing.
type AMQPConfig struct {
	URL string `env:"URL"`
}

func (c AMQPConfig) Enabled() bool { return c.URL != "" }

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}

type CheckoutConfig struct {
	RateLimit  int           `env:"RATE_LIMIT" envDefault:"10"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

type CacheConfig struct {
	EventTTL time.Duration `env:"EVENT_TTL" envDefault:"30s"`
}

// New loads .env when present, then reads the environment.
func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if c.Postgres.User == "" {
			errs = append(errs, errors.New("missing POSTGRES_USER"))
		}
		if c.Postgres.Password == "" {
			errs = append(errs, errors.New("missing POSTGRES_PASSWORD"))
		}
		if c.Postgres.Name == "" {
			errs = append(errs, errors.New("missing POSTGRES_DB"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid STORE_DRIVER %q", c.Store.Driver))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("missing AUTH_JWT_SECRET"))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_TTL must be positive"))
	}

	if c.Checkout.RateLimit < 0 {
		errs = append(errs, errors.New("CHECKOUT_RATE_LIMIT must not be negative"))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLevel maps LOG_LEVEL to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return l, nil
}
