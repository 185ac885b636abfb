package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig       `envPrefix:"APP_"`
	Database  DatabaseConfig  `envPrefix:"DB_"`
	JWT       JWTConfig       `envPrefix:"JWT_"`
	Org       OrgConfig       `envPrefix:"ORG_"`
	Payroll   PayrollConfig   `envPrefix:"PAYROLL_"`
	RateLimit RateLimitConfig `envPrefix:"RATELIMIT_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	Admin     AdminSeedConfig `envPrefix:"ADMIN_"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	Env            string   `env:"ENV" envDefault:"development"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

type DatabaseConfig struct {
	// Driver selects the record store: "postgres" or "memory".
	Driver   string `env:"DRIVER" envDefault:"postgres"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"hrms"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"`
	MaxConns int32  `env:"MAX_CONNS" envDefault:"25"`
	MinConns int32  `env:"MIN_CONNS" envDefault:"5"`
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret string        `env:"SECRET_KEY"`
	TTL    time.Duration `env:"TTL" envDefault:"168h"`
	Skew   time.Duration `env:"ACCEPTABLE_SKEW" envDefault:"30s"`
}

// OrgConfig pins the timezone every calendar day is computed in.
type OrgConfig struct {
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`
}

type PayrollConfig struct {
	PFRatePercent     int64 `env:"PF_RATE_PERCENT" envDefault:"12"`
	ProfessionalTax   int64 `env:"PROFESSIONAL_TAX" envDefault:"200"`
	StandardAllowance int64 `env:"STANDARD_ALLOWANCE" envDefault:"4167"`
}

type RateLimitConfig struct {
	// Backend is "memory" or "redis".
	Backend       string        `env:"BACKEND" envDefault:"memory"`
	LoginAttempts int           `env:"LOGIN_ATTEMPTS" envDefault:"5"`
	LoginWindow   time.Duration `env:"LOGIN_WINDOW" envDefault:"1m"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// AdminSeedConfig describes the bootstrap administrator created by seed-admin.
type AdminSeedConfig struct {
	FirstName string `env:"FIRST_NAME" envDefault:"Admin"`
	LastName  string `env:"LAST_NAME" envDefault:"User"`
	Email     string `env:"EMAIL" envDefault:"admin@odoo.in"`
	Password  string `env:"PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case "memory":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or memory, got %q", c.Database.Driver)
	}
	if _, err := time.LoadLocation(c.Org.Timezone); err != nil {
		return fmt.Errorf("ORG_TIMEZONE %q: %w", c.Org.Timezone, err)
	}
	if c.Payroll.PFRatePercent < 0 || c.Payroll.ProfessionalTax < 0 || c.Payroll.StandardAllowance < 0 {
		return fmt.Errorf("payroll parameters must not be negative")
	}
	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("RATELIMIT_BACKEND must be memory or redis, got %q", c.RateLimit.Backend)
	}
	if c.RateLimit.LoginAttempts <= 0 || c.RateLimit.LoginWindow <= 0 {
		return fmt.Errorf("login rate limit must allow at least one attempt per positive window")
	}
	return nil
}

// Location returns the org timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Org.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
