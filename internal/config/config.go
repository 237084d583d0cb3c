package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const APIKeyEnv = "OPENROUTESERVICE_API_KEY"

var ErrMissingAPIKey = errors.New(APIKeyEnv + " environment variable is not set")

// Config holds the process configuration, read once at startup.
type Config struct {
	Host string
	Port string

	ORSAPIKey      string
	ORSBaseURL     string
	ORSTimeout     time.Duration
	ORSMaxAttempts int

	LogFile  string
	LogLevel string
	Env      string

	ZipkinURL string
}

func (c *Config) Addr() string { return c.Host + ":" + c.Port }

// Logging is the subset of Config needed to build the logger. It never
// fails, so the logger exists before any other setting is checked.
type Logging struct {
	File  string
	Level string
	Env   string
}

func LoadLogging() Logging {
	l := Logging{
		Level: Get("LOG_LEVEL", "info"),
		Env:   Get("APP_ENV", "production"),
	}

	// An explicitly empty LOG_FILE disables the file sink.
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		l.File = v
	} else {
		l.File = "/app/logs/app.log"
	}

	return l
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// It reports whether a file was loaded.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads the configuration from the environment.
// A missing API key is the only fatal condition.
func Load() (*Config, error) {
	cfg := &Config{
		Host:       Get("HOST", "0.0.0.0"),
		Port:       Get("PORT", "8000"),
		ORSAPIKey:  strings.TrimSpace(os.Getenv(APIKeyEnv)),
		ORSBaseURL: Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ZipkinURL:  os.Getenv("ZIPKIN_URL"),
	}

	logging := LoadLogging()
	cfg.LogFile, cfg.LogLevel, cfg.Env = logging.File, logging.Level, logging.Env

	timeout, err := time.ParseDuration(Get("ORS_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("load config: ORS_TIMEOUT: %w", err)
	}
	cfg.ORSTimeout = timeout

	attempts, err := strconv.Atoi(Get("ORS_MAX_ATTEMPTS", "1"))
	if err != nil || attempts < 1 {
		return nil, fmt.Errorf("load config: ORS_MAX_ATTEMPTS must be a positive integer, got %q", os.Getenv("ORS_MAX_ATTEMPTS"))
	}
	cfg.ORSMaxAttempts = attempts

	if cfg.ORSAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return cfg, nil
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
