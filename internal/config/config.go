package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Grid     GridConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

const (
	HolidaySourceDatabase = "database"
	HolidaySourceFile     = "file"
)

// GridConfig holds attendance grid settings
type GridConfig struct {
	WeeklyOffDay       string
	HolidaySource      string
	HolidayFile        string
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration
	CacheMaxEntries    int
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_grid"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	// Grid configuration
	cacheTTL, err := time.ParseDuration(getEnv("GRID_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRID_CACHE_TTL: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("GRID_CACHE_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRID_CACHE_SWEEP_INTERVAL: %w", err)
	}
	cacheMaxEntries, err := strconv.Atoi(getEnv("GRID_CACHE_MAX_ENTRIES", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid GRID_CACHE_MAX_ENTRIES: %w", err)
	}

	config.Grid = GridConfig{
		WeeklyOffDay:       getEnv("WEEKLY_OFF_DAY", "Sunday"),
		HolidaySource:      strings.ToLower(getEnv("HOLIDAY_SOURCE", HolidaySourceDatabase)),
		HolidayFile:        getEnv("HOLIDAY_FILE", "assets/holidays.yaml"),
		CacheTTL:           cacheTTL,
		CacheSweepInterval: sweepInterval,
		CacheMaxEntries:    cacheMaxEntries,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if !isWeekdayName(c.Grid.WeeklyOffDay) {
		return fmt.Errorf("WEEKLY_OFF_DAY must be a weekday name, got %q", c.Grid.WeeklyOffDay)
	}
	switch c.Grid.HolidaySource {
	case HolidaySourceDatabase:
	case HolidaySourceFile:
		if c.Grid.HolidayFile == "" {
			return fmt.Errorf("HOLIDAY_FILE is required when HOLIDAY_SOURCE is %q", HolidaySourceFile)
		}
	default:
		return fmt.Errorf("HOLIDAY_SOURCE must be %q or %q, got %q", HolidaySourceDatabase, HolidaySourceFile, c.Grid.HolidaySource)
	}
	if c.Grid.CacheTTL < 0 {
		return fmt.Errorf("GRID_CACHE_TTL must not be negative")
	}
	if c.Grid.CacheTTL > 0 && c.Grid.CacheSweepInterval <= 0 {
		return fmt.Errorf("GRID_CACHE_SWEEP_INTERVAL must be positive when the cache is enabled")
	}
	if c.Grid.CacheTTL > 0 && c.Grid.CacheMaxEntries <= 0 {
		return fmt.Errorf("GRID_CACHE_MAX_ENTRIES must be positive when the cache is enabled")
	}
	return nil
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

func isWeekdayName(name string) bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(name), d.String()) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
