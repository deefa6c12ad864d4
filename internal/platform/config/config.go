package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr                string         `yaml:"addr"`
	Environment         string         `yaml:"environment"`
	DatabaseURL         string         `yaml:"database_url"`
	DB                  DatabaseConfig `yaml:"database"`
	DBConnectRetries    int            `yaml:"db_connect_retries"`
	DBConnectBackoff    time.Duration  `yaml:"db_connect_backoff"`
	FrontendDir         string         `yaml:"frontend_dir"`
	FrontendOrigins     []string       `yaml:"frontend_origins"`
	RunMigrations       bool           `yaml:"run_migrations"`
	SeedDemoData        bool           `yaml:"seed_demo_data"`
	MaxBodyBytes        int64          `yaml:"max_body_bytes"`
	RateLimitPerMinute  int            `yaml:"rate_limit_per_minute"`
	MetricsEnabled      bool           `yaml:"metrics_enabled"`
	LogLevel            string         `yaml:"log_level"`
	CalendarConcurrency int            `yaml:"calendar_concurrency"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

func Defaults() Config {
	return Config{
		Addr:        ":8080",
		Environment: "development",
		DB: DatabaseConfig{
			Port:    5432,
			SSLMode: "disable",
		},
		DBConnectRetries:    30,
		DBConnectBackoff:    2 * time.Second,
		FrontendDir:         "frontend/dist",
		FrontendOrigins:     []string{"http://localhost:5173"},
		RunMigrations:       true,
		MaxBodyBytes:        1048576,
		RateLimitPerMinute:  120,
		MetricsEnabled:      true,
		LogLevel:            "info",
		CalendarConcurrency: 8,
	}
}

// Load reads .env, then the optional YAML file named by CONFIG_FILE, then the
// process environment. Later sources win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Addr = getEnv("APP_ADDR", cfg.Addr)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DB.Host = getEnv("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = getEnvInt("DB_PORT", cfg.DB.Port)
	cfg.DB.User = getEnv("DB_USER", cfg.DB.User)
	cfg.DB.Password = getEnv("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = getEnv("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", cfg.DB.SSLMode)
	cfg.DBConnectRetries = getEnvInt("DB_CONNECT_RETRIES", cfg.DBConnectRetries)
	cfg.DBConnectBackoff = getEnvDuration("DB_CONNECT_BACKOFF", cfg.DBConnectBackoff)
	cfg.FrontendDir = getEnv("FRONTEND_DIR", cfg.FrontendDir)
	cfg.FrontendOrigins = getEnvList("FRONTEND_ORIGINS", cfg.FrontendOrigins)
	cfg.RunMigrations = getEnvBool("RUN_MIGRATIONS", cfg.RunMigrations)
	cfg.SeedDemoData = getEnvBool("SEED_DEMO_DATA", cfg.SeedDemoData)
	cfg.MaxBodyBytes = int64(getEnvInt("MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.CalendarConcurrency = getEnvInt("CALENDAR_CONCURRENCY", cfg.CalendarConcurrency)
}

// DSN prefers DATABASE_URL and otherwise assembles a URL from the DB_* parts.
func (c Config) DSN() string {
	if strings.TrimSpace(c.DatabaseURL) != "" {
		return c.DatabaseURL
	}
	if c.DB.Host == "" || c.DB.Name == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:   "/" + c.DB.Name,
	}
	if c.DB.User != "" {
		u.User = url.UserPassword(c.DB.User, c.DB.Password)
	}
	if c.DB.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.DB.SSLMode}}.Encode()
	}
	return u.String()
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DSN()) == "" {
		return fmt.Errorf("DATABASE_URL or DB_HOST and DB_NAME are required")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.DBConnectRetries < 1 {
		return fmt.Errorf("DB_CONNECT_RETRIES must be at least 1")
	}
	if c.CalendarConcurrency < 1 {
		return fmt.Errorf("CALENDAR_CONCURRENCY must be at least 1")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	return nil
}
