package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadValidConfig(t *testing.T) {
	_ = os.Setenv("AIRQUALITY_URL", "http://127.0.0.1:9999/v1/airquality")
	_ = os.Setenv("AIRQUALITY_API_KEY", "secret")
	_ = os.Setenv("OUTPUT_FILE", "out.csv")
	_ = os.Setenv("HTTP_TIMEOUT", "30s")
	_ = os.Setenv("ENV", "prod")
	_ = os.Setenv("LOG_LEVEL", "debug")
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.AirQualityURL != "http://127.0.0.1:9999/v1/airquality" {
		t.Errorf("Expected custom air quality URL, got %s", cfg.AirQualityURL)
	}
	if cfg.AirQualityAPIKey != "secret" {
		t.Errorf("Expected API key to be read from env, got %q", cfg.AirQualityAPIKey)
	}
	if cfg.OutputFile != "out.csv" {
		t.Errorf("Expected output file out.csv, got %s", cfg.OutputFile)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %s", cfg.HTTPTimeout)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Expected env prod, got %s", cfg.Env)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("Expected API key to be accepted, got %v", err)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.DemographicsURL != DefaultDemographicsURL {
		t.Errorf("Expected default demographics URL, got %s", cfg.DemographicsURL)
	}
	if cfg.AirQualityURL != DefaultAirQualityURL {
		t.Errorf("Expected default air quality URL, got %s", cfg.AirQualityURL)
	}
	if cfg.OutputFile != "ciudades.csv" {
		t.Errorf("Expected default output file ciudades.csv, got %s", cfg.OutputFile)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("Expected no default timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.DemographicsDigest != DefaultDemographicsHash {
		t.Errorf("Expected default digest, got %s", cfg.DemographicsDigest)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.LogRetentionWeeks != 4 {
		t.Errorf("Expected default retention 4, got %d", cfg.LogRetentionWeeks)
	}
}

func TestRequireAPIKeyMissing(t *testing.T) {
	cleanupEnv()
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = cfg.RequireAPIKey()
	if err == nil {
		t.Fatal("Expected error for missing API key, got nil")
	}
	if !strings.Contains(err.Error(), "AIRQUALITY_API_KEY") {
		t.Errorf("Expected error to name AIRQUALITY_API_KEY, got %v", err)
	}
}

func TestInvalidValues(t *testing.T) {
	testCases := []struct {
		key      string
		value    string
		expected string
	}{
		{"DEMOGRAPHICS_URL", "ftp://example.com/data.csv", "invalid DEMOGRAPHICS_URL"},
		{"AIRQUALITY_URL", "not a url", "invalid AIRQUALITY_URL"},
		{"HTTP_TIMEOUT", "soon", "invalid HTTP_TIMEOUT"},
		{"HTTP_TIMEOUT", "-1s", "invalid HTTP_TIMEOUT"},
		{"PORT", "abc", "PORT must be a valid number"},
		{"PORT", "80", "PORT 80 is privileged"},
		{"ADDRESS", "invalid", "ADDRESS must be a valid IP address"},
		{"ENV", "invalid", "ENV must be one of"},
		{"LOG_LEVEL", "invalid", "LOG_LEVEL must be one of"},
		{"LOG_RETENTION_WEEKS", "60", "LOG_RETENTION_WEEKS is too large"},
		{"MAX_LOG_FILE_SIZE", "10", "MAX_LOG_FILE_SIZE is too small"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			cleanupEnv()
			defer cleanupEnv()
			_ = os.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%s, got nil", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}

func cleanupEnv() {
	for _, key := range GetEnvVars() {
		_ = os.Unsetenv(key)
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		input    string
		expected Environment
		hasError bool
	}{
		{"dev", EnvDevelopment, false},
		{"development", EnvDevelopment, false},
		{"staging", EnvStaging, false},
		{"prod", EnvProduction, false},
		{"production", EnvProduction, false},
		{"test", EnvTest, false},
		{"invalid", EnvDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env, err := ParseEnvironment(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for %s, got none", tt.input)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for %s: %v", tt.input, err)
				}
				if env != tt.expected {
					t.Errorf("Expected %v, got %v", tt.expected, env)
				}
			}
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	tests := []struct {
		env      Environment
		expected string
	}{
		{EnvDevelopment, "dev"},
		{EnvStaging, "staging"},
		{EnvProduction, "prod"},
		{EnvTest, "test"},
	}

	for _, tt := range tests {
		if got := tt.env.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}
