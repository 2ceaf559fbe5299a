package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        int    `env:"PORT" envDefault:"5000"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      int    `env:"DB_PORT" envDefault:"5432"`
	DBName      string `env:"DB_NAME" envDefault:"hrpro"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBSchema    string `env:"DB_SCHEMA" envDefault:"public"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`

	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
	FrontendDir string `env:"FRONTEND_DIR"`

	EmployerName          string  `env:"EMPLOYER_NAME" envDefault:"bd054"`
	NetSalaryRate         float64 `env:"NET_SALARY_RATE" envDefault:"0.77"`
	VacationAllotmentDays int     `env:"VACATION_ALLOTMENT_DAYS" envDefault:"22"`

	RateLimitRequests  int64         `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`

	// TrustProxy takes the client address from forwarded headers. Enable only
	// behind a reverse proxy that overwrites them.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"hrpro.events"`

	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"true"`
	RunSeed       bool `env:"RUN_SEED" envDefault:"true"`
}

// Load reads .env files (when present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env.local", ".env")

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ConnString returns DATABASE_URL when set, otherwise a URL assembled from the DB_* parts.
func (c Config) ConnString() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" && strings.TrimSpace(c.DBHost) == "" {
		return fmt.Errorf("DATABASE_URL or DB_HOST is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if strings.TrimSpace(c.DBSchema) == "" {
		return fmt.Errorf("DB_SCHEMA must not be empty")
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.NetSalaryRate <= 0 || c.NetSalaryRate > 1 {
		return fmt.Errorf("NET_SALARY_RATE must be in (0, 1]")
	}
	if c.VacationAllotmentDays < 0 {
		return fmt.Errorf("VACATION_ALLOTMENT_DAYS must not be negative")
	}
	if strings.TrimSpace(c.EmployerName) == "" {
		return fmt.Errorf("EMPLOYER_NAME must not be empty")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if len(c.KafkaBrokers) > 0 && strings.TrimSpace(c.KafkaTopic) == "" {
		return fmt.Errorf("KAFKA_TOPIC must be set when KAFKA_BROKERS is configured")
	}
	return nil
}
