package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8080,
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        120 * time.Second,
			ShutDownTimeout:    5 * time.Second,
			RequestTimeout:     5 * time.Second,
			CORSAllowedOrigins: "*",
		},
		Source: SourceConfig{
			URL: defaultSourceURL,
		},
		Students: StudentsConfig{
			Backend:  "memory",
			CacheTTL: 10 * time.Minute,
		},
		Misc: MiscConfig{
			LogLevel: "info",
			GinMode:  "release",
		},
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	if err := validConfig().validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"zero port", 0},
		{"negative port", -1},
		{"too high port", 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port

			if err := cfg.validate(); err == nil {
				t.Errorf("expected error for port %d", tt.port)
			}
		})
	}
}

func TestConfig_Validate_InvalidTimeouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"zero read timeout", func(s *ServerConfig) { s.ReadTimeout = 0 }},
		{"zero write timeout", func(s *ServerConfig) { s.WriteTimeout = 0 }},
		{"zero idle timeout", func(s *ServerConfig) { s.IdleTimeout = 0 }},
		{"zero shutdown timeout", func(s *ServerConfig) { s.ShutDownTimeout = 0 }},
		{"zero request timeout", func(s *ServerConfig) { s.RequestTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Server)

			if err := cfg.validate(); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestConfig_Validate_EmptySourceURL(t *testing.T) {
	cfg := validConfig()
	cfg.Source.URL = ""

	if err := cfg.validate(); err == nil {
		t.Error("expected error for empty source url")
	}
}

func TestConfig_Validate_RefreshInterval(t *testing.T) {
	cfg := validConfig()
	cfg.Source.RefreshInterval = 0
	if err := cfg.validate(); err != nil {
		t.Errorf("expected zero refresh interval to be valid, got %v", err)
	}

	cfg.Source.RefreshInterval = -time.Second
	if err := cfg.validate(); err == nil {
		t.Error("expected error for negative refresh interval")
	}
}

func TestConfig_Validate_StudentsBackend(t *testing.T) {
	tests := []struct {
		name        string
		backend     string
		databaseURL string
		wantErr     bool
	}{
		{"memory", "memory", "", false},
		{"empty defaults to memory", "", "", false},
		{"postgres with url", "postgres", "postgres://localhost/grades", false},
		{"postgres without url", "postgres", "", true},
		{"unknown", "mongo", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Students.Backend = tt.backend
			cfg.Students.DatabaseURL = tt.databaseURL

			err := cfg.validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate_NegativeCacheTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Students.CacheTTL = -time.Minute

	if err := cfg.validate(); err == nil {
		t.Error("expected error for negative cache ttl")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_ENV_VAR", "custom_value")

	result := getEnvOrDefault("TEST_ENV_VAR", "default_value")
	if result != "custom_value" {
		t.Errorf("expected 'custom_value', got '%s'", result)
	}

	result = getEnvOrDefault("NONEXISTENT_VAR", "default_value")
	if result != "default_value" {
		t.Errorf("expected 'default_value', got '%s'", result)
	}
}

func TestGetEnvOrViperPort_FromEnv(t *testing.T) {
	t.Setenv("TEST_PORT", "9090")

	port, err := getEnvOrViperPort(viper.New(), "TEST_PORT", "server.port")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if port != 9090 {
		t.Errorf("expected 9090, got %d", port)
	}
}

func TestGetEnvOrViperPort_FromViper(t *testing.T) {
	v := viper.New()
	v.Set("server.port", 7070)

	port, err := getEnvOrViperPort(v, "TEST_PORT_UNSET", "server.port")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if port != 7070 {
		t.Errorf("expected 7070, got %d", port)
	}
}

func TestGetEnvOrViperPort_InvalidEnv(t *testing.T) {
	t.Setenv("TEST_PORT_INVALID", "not_a_number")

	_, err := getEnvOrViperPort(viper.New(), "TEST_PORT_INVALID", "server.port")
	if err == nil {
		t.Error("expected error for invalid port")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(configPathEnv, t.TempDir())
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("expected default request timeout 5s, got %s", cfg.Server.RequestTimeout)
	}
	if cfg.Source.URL != defaultSourceURL {
		t.Errorf("expected default source url, got %s", cfg.Source.URL)
	}
	if cfg.Source.RefreshInterval != 0 {
		t.Errorf("expected periodic refresh disabled, got %s", cfg.Source.RefreshInterval)
	}
	if cfg.Students.Backend != "memory" {
		t.Errorf("expected memory backend, got %s", cfg.Students.Backend)
	}
	if cfg.Students.CacheTTL != 10*time.Minute {
		t.Errorf("expected cache ttl 10m, got %s", cfg.Students.CacheTTL)
	}
	if cfg.Misc.LogLevel != "info" || cfg.Misc.GinMode != "release" {
		t.Errorf("unexpected misc defaults: %+v", cfg.Misc)
	}
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9000
  request_timeout: 2s
source:
  url: file:///data/grades.json
  refresh_interval: 30s
  watch: true
students:
  backend: memory
  redis_addr: localhost:6379
misc:
  log_level: debug
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configPathEnv, dir)
	t.Setenv("PORT", "")
	t.Setenv("GO_GRADES_MISC_GIN_MODE", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000 from file, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 2*time.Second {
		t.Errorf("expected request timeout 2s, got %s", cfg.Server.RequestTimeout)
	}
	if cfg.Source.URL != "file:///data/grades.json" || !cfg.Source.Watch {
		t.Errorf("unexpected source config: %+v", cfg.Source)
	}
	if cfg.Source.RefreshInterval != 30*time.Second {
		t.Errorf("expected refresh interval 30s, got %s", cfg.Source.RefreshInterval)
	}
	if cfg.Students.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis addr from file, got %q", cfg.Students.RedisAddr)
	}
	if cfg.Misc.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Misc.LogLevel)
	}
	if cfg.Misc.GinMode != "debug" {
		t.Errorf("expected gin mode from env, got %s", cfg.Misc.GinMode)
	}
}

func TestLoadConfig_PortEnvOverride(t *testing.T) {
	t.Setenv(configPathEnv, t.TempDir())
	t.Setenv("PORT", "3000")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("expected port 3000 from PORT, got %d", cfg.Server.Port)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(configPathEnv, dir)

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestLoadConfig_ValidationError(t *testing.T) {
	t.Setenv(configPathEnv, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("GO_GRADES_STUDENTS_BACKEND", "postgres")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for postgres backend without database url")
	}
}
