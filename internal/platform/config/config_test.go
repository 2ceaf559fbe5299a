package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, 0.77, cfg.NetSalaryRate)
	assert.Equal(t, 22, cfg.VacationAllotmentDays)
	assert.Equal(t, int64(100), cfg.RateLimitRequests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.TrustProxy)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_SCHEMA", "bd054_schema")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "bd054_schema", cfg.DBSchema)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.TrustProxy)
}

func TestConnString(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: 5433, DBName: "hr", DBUser: "app", DBPassword: "p@ss"}
	assert.Equal(t, "postgres://app:p%40ss@db:5433/hr?sslmode=disable", cfg.ConnString())

	cfg.DatabaseURL = "postgres://override/db"
	assert.Equal(t, "postgres://override/db", cfg.ConnString())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:                  5000,
		DBHost:                "localhost",
		DBSchema:              "public",
		DBMaxConns:            10,
		EmployerName:          "bd054",
		NetSalaryRate:         0.77,
		VacationAllotmentDays: 22,
		MaxBodyBytes:          1 << 20,
		RateLimitRequests:     100,
		RateLimitWindow:       15 * time.Minute,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no database", func(c *Config) { c.DBHost = "" }},
		{"bad port", func(c *Config) { c.Port = 0 }},
		{"empty schema", func(c *Config) { c.DBSchema = " " }},
		{"rate above one", func(c *Config) { c.NetSalaryRate = 1.5 }},
		{"small body limit", func(c *Config) { c.MaxBodyBytes = 10 }},
		{"zero rate limit", func(c *Config) { c.RateLimitRequests = 0 }},
		{"kafka without topic", func(c *Config) { c.KafkaBrokers = []string{"k:9092"}; c.KafkaTopic = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
