// Package config has the configuration for the pipeline and its optional server
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment is the deployment environment the binary runs in
type Environment int

const (
	EnvDevelopment Environment = iota
	EnvStaging
	EnvProduction
	EnvTest
)

// String returns the short name used in the ENV variable
func (e Environment) String() string {
	switch e {
	case EnvStaging:
		return "staging"
	case EnvProduction:
		return "prod"
	case EnvTest:
		return "test"
	default:
		return "dev"
	}
}

// ParseEnvironment converts an ENV value into an Environment
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dev", "development":
		return EnvDevelopment, nil
	case "staging":
		return EnvStaging, nil
	case "prod", "production":
		return EnvProduction, nil
	case "test":
		return EnvTest, nil
	}
	return EnvDevelopment, fmt.Errorf("ENV must be one of: [dev staging prod test], got: %s", s)
}

const (
	DefaultDemographicsURL   = "https://public.opendatasoft.com/explore/dataset/us-cities-demographics/download/?format=csv&timezone=Europe/Berlin&lang=en&use_labels_for_header=true&csv_separator=%3B"
	DefaultAirQualityURL     = "https://api.api-ninjas.com/v1/airquality"
	DefaultOutputFile        = "ciudades.csv"
	DefaultDemographicsHash  = "567b67390efd8da8091f6f86da9f5e76b30d1b7dcb25bd7d9b87bcb757b2c571"
	DefaultSchedule          = "06:00"
	defaultMaxLogFileSize    = 104857600 // 100MB
	defaultLogRetentionWeeks = 4
)

// Config holds all application configuration
type Config struct {
	DemographicsURL    string
	AirQualityURL      string
	AirQualityAPIKey   string
	OutputFile         string
	HTTPTimeout        time.Duration // 0 means no client timeout
	DemographicsDigest string
	Schedule           string // gocron At() expression, e.g. "06:00;18:00"

	Port              string
	Address           string
	Env               Environment
	LogLevel          string
	LogDir            string
	LogRetentionWeeks int   // Number of weeks to keep log files
	MaxLogFileSize    int64 // Maximum log file size in bytes
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	env, err := ParseEnvironment(getEnvWithDefault("ENV", "dev"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid ENV: %w", err)
	}

	timeout, err := time.ParseDuration(getEnvWithDefault("HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid HTTP_TIMEOUT: %w", err)
	}

	cfg := &Config{
		DemographicsURL:    getEnvWithDefault("DEMOGRAPHICS_URL", DefaultDemographicsURL),
		AirQualityURL:      getEnvWithDefault("AIRQUALITY_URL", DefaultAirQualityURL),
		AirQualityAPIKey:   os.Getenv("AIRQUALITY_API_KEY"),
		OutputFile:         getEnvWithDefault("OUTPUT_FILE", DefaultOutputFile),
		HTTPTimeout:        timeout,
		DemographicsDigest: getEnvWithDefault("DEMOGRAPHICS_DIGEST", DefaultDemographicsHash),
		Schedule:           getEnvWithDefault("SCHEDULE", DefaultSchedule),
		Port:               getEnvWithDefault("PORT", "8000"),
		Address:            getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:                env,
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
		LogDir:             getEnvWithDefault("LOG_DIR", "logs"),
		LogRetentionWeeks:  getIntEnvWithDefault("LOG_RETENTION_WEEKS", defaultLogRetentionWeeks),
		MaxLogFileSize:     getInt64EnvWithDefault("MAX_LOG_FILE_SIZE", defaultMaxLogFileSize),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RequireAPIKey reports an error when no air-quality credential was supplied.
// It is separate from Load so that commands that never call the API can run without it.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.AirQualityAPIKey) == "" {
		return fmt.Errorf("missing required environment variables: [AIRQUALITY_API_KEY]")
	}
	return nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	if err := validateURL(cfg.DemographicsURL); err != nil {
		return fmt.Errorf("invalid DEMOGRAPHICS_URL: %w", err)
	}

	if err := validateURL(cfg.AirQualityURL); err != nil {
		return fmt.Errorf("invalid AIRQUALITY_URL: %w", err)
	}

	if strings.TrimSpace(cfg.OutputFile) == "" {
		return fmt.Errorf("invalid OUTPUT_FILE: cannot be empty")
	}

	if cfg.HTTPTimeout < 0 {
		return fmt.Errorf("invalid HTTP_TIMEOUT: must not be negative, got: %s", cfg.HTTPTimeout)
	}

	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: %w", err)
	}

	if err := validateMaxLogFileSize(cfg.MaxLogFileSize); err != nil {
		return fmt.Errorf("invalid MAX_LOG_FILE_SIZE: %w", err)
	}

	return nil
}

// validateURL checks that a feed URL is absolute http(s)
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("URL must be valid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host, got: %s", raw)
	}
	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "127.0.0.1" || address == "::1" || address == "localhost" {
		return nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	if !ip.IsLoopback() && !ip.IsPrivate() {
		return fmt.Errorf("ADDRESS %s is a public IP, consider using private network ranges for security", address)
	}

	return nil
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return fmt.Errorf("LOG_LEVEL cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 { // 1 year maximum
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
	}

	return nil
}

// validateMaxLogFileSize validates the MAX_LOG_FILE_SIZE environment variable
func validateMaxLogFileSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE must be positive, got: %d", size)
	}

	// Minimum 1MB, maximum 1GB
	if size < 1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too small (min 1MB), got: %d bytes", size)
	}

	if size > 1024*1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too large (max 1GB), got: %d bytes", size)
	}

	return nil
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64EnvWithDefault gets an environment variable as int64 with a default value
func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"DEMOGRAPHICS_URL",
		"AIRQUALITY_URL",
		"AIRQUALITY_API_KEY",
		"OUTPUT_FILE",
		"HTTP_TIMEOUT",
		"DEMOGRAPHICS_DIGEST",
		"SCHEDULE",
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_DIR",
		"LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE",
	}
}
