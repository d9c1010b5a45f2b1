package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoader_Load_Defaults(t *testing.T) {
	// Unset env vars to ensure a clean test
	os.Unsetenv("SCHOOL_CRM_BASE_URL")

	// Mock home directory to avoid picking up a real config file
	tmpDir, err := os.MkdirTemp("", "home")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)
	t.Setenv("HOME", tmpDir)

	loader := NewLoader()
	cfg, err := loader.Load()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("wrong BaseURL: got %s", cfg.BaseURL)
	}
	if cfg.APIPrefix != "/api/v1" {
		t.Errorf("wrong APIPrefix: got %s", cfg.APIPrefix)
	}
	if cfg.TenantHeader != "X-Tenant-ID" {
		t.Errorf("wrong TenantHeader: got %s", cfg.TenantHeader)
	}
	if cfg.TimeoutMs != 30000 {
		t.Errorf("wrong TimeoutMs: got %d", cfg.TimeoutMs)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("wrong RetryAttempts: got %d", cfg.RetryAttempts)
	}
	if cfg.RetryDelayMs != 1000 {
		t.Errorf("wrong RetryDelayMs: got %d", cfg.RetryDelayMs)
	}
	if cfg.CredentialsPath == "" {
		t.Error("CredentialsPath should be auto-resolved, but is empty")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("wrong LogLevel: got %s", cfg.LogLevel)
	}
}

func TestLoader_Load_FromEnv(t *testing.T) {
	t.Setenv("SCHOOL_CRM_BASE_URL", "https://api.school.example")
	t.Setenv("SCHOOL_CRM_LOG_LEVEL", "warn")
	t.Setenv("SCHOOL_CRM_RETRY_ATTEMPTS", "5")

	loader := NewLoader()
	cfg, err := loader.Load()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.BaseURL != "https://api.school.example" {
		t.Errorf("wrong BaseURL: got %s", cfg.BaseURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("wrong LogLevel: got %s", cfg.LogLevel)
	}
	if cfg.RetryAttempts != 5 {
		t.Errorf("wrong RetryAttempts: got %d", cfg.RetryAttempts)
	}
}

func TestLoader_Validation(t *testing.T) {
	t.Run("missing base_url", func(t *testing.T) {
		loader := NewLoader()
		loader.v.Set("base_url", "")
		_, err := loader.Load()
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if !strings.Contains(err.Error(), "base_url is required") {
			t.Errorf("expected error to contain 'base_url is required', got '%v'", err)
		}
	})

	t.Run("invalid log_level", func(t *testing.T) {
		loader := NewLoader()
		loader.v.Set("log_level", "trace")
		_, err := loader.Load()
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if !strings.Contains(err.Error(), "invalid log_level") {
			t.Errorf("expected error to contain 'invalid log_level', got '%v'", err)
		}
	})

	t.Run("zero timeout", func(t *testing.T) {
		loader := NewLoader()
		loader.v.Set("timeout_ms", 0)
		_, err := loader.Load()
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if !strings.Contains(err.Error(), "timeout_ms") {
			t.Errorf("expected error to contain 'timeout_ms', got '%v'", err)
		}
	})
}
