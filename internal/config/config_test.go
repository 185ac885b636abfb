package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testSecret)
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 168*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "UTC", cfg.Org.Timezone)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, int64(12), cfg.Payroll.PFRatePercent)
	assert.Equal(t, int64(200), cfg.Payroll.ProfessionalTax)
	assert.Equal(t, int64(4167), cfg.Payroll.StandardAllowance)
	assert.Equal(t, "memory", cfg.RateLimit.Backend)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.App.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testSecret)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("ORG_TIMEZONE", "Asia/Kolkata")
	t.Setenv("PAYROLL_PF_RATE_PERCENT", "10")
	t.Setenv("RATELIMIT_BACKEND", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
	assert.Equal(t, int64(10), cfg.Payroll.PFRatePercent)
	assert.Equal(t, "postgres://postgres:secret@db:5432/hrms?sslmode=disable", cfg.DatabaseURL())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			JWT:       JWTConfig{Secret: testSecret, TTL: time.Hour},
			Database:  DatabaseConfig{Driver: "memory"},
			Org:       OrgConfig{Timezone: "UTC"},
			RateLimit: RateLimitConfig{Backend: "memory", LoginAttempts: 5, LoginWindow: time.Minute},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, false},
		{"zero ttl", func(c *Config) { c.JWT.TTL = 0 }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, false},
		{"postgres without password", func(c *Config) { c.Database.Driver = "postgres" }, false},
		{"bad timezone", func(c *Config) { c.Org.Timezone = "Mars/Olympus" }, false},
		{"negative tax", func(c *Config) { c.Payroll.ProfessionalTax = -1 }, false},
		{"unknown limiter", func(c *Config) { c.RateLimit.Backend = "memcached" }, false},
		{"no attempts", func(c *Config) { c.RateLimit.LoginAttempts = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
