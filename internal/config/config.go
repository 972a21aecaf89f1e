package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_grades/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "GO_GRADES"
	configPathEnv     = "GO_GRADES_CONFIG_PATH"
	defaultConfigPath = "./config"
	defaultSourceURL  = "https://outlier-coding-test-data.onrender.com/grades.json"
)

type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Students StudentsConfig
	Misc     MiscConfig
}

type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
}

// SourceConfig describes where grade records are fetched from.
// RefreshInterval 0 disables periodic refresh.
type SourceConfig struct {
	URL             string `validate:"required"`
	RefreshInterval time.Duration
	Watch           bool
}

type StudentsConfig struct {
	Backend       string
	SeedFile      string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

type MiscConfig struct {
	LogLevel string
	GinMode  string
}

// LoadConfig reads .env, config.yaml and GO_GRADES_* environment variables, in
// increasing order of precedence, and validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithComponent("config").Warnf("cannot load .env file: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getEnvOrDefault(configPathEnv, defaultConfigPath))

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Info("no config file found, using defaults and env vars")
	}

	port, err := getEnvOrViperPort(v, "PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        v.GetDuration("server.read_timeout"),
			WriteTimeout:       v.GetDuration("server.write_timeout"),
			IdleTimeout:        v.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    v.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     v.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: v.GetString("server.cors_allowed_origins"),
		},
		Source: SourceConfig{
			URL:             v.GetString("source.url"),
			RefreshInterval: v.GetDuration("source.refresh_interval"),
			Watch:           v.GetBool("source.watch"),
		},
		Students: StudentsConfig{
			Backend:       v.GetString("students.backend"),
			SeedFile:      v.GetString("students.seed_file"),
			DatabaseURL:   v.GetString("students.database_url"),
			RedisAddr:     v.GetString("students.redis_addr"),
			RedisPassword: v.GetString("students.redis_password"),
			RedisDB:       v.GetInt("students.redis_db"),
			CacheTTL:      v.GetDuration("students.cache_ttl"),
		},
		Misc: MiscConfig{
			LogLevel: v.GetString("misc.log_level"),
			GinMode:  v.GetString("misc.gin_mode"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.request_timeout", 5*time.Second)
	v.SetDefault("server.cors_allowed_origins", "*")

	v.SetDefault("source.url", defaultSourceURL)
	v.SetDefault("source.refresh_interval", time.Duration(0))
	v.SetDefault("source.watch", false)

	v.SetDefault("students.backend", "memory")
	v.SetDefault("students.seed_file", "")
	v.SetDefault("students.database_url", "")
	v.SetDefault("students.redis_addr", "")
	v.SetDefault("students.redis_password", "")
	v.SetDefault("students.redis_db", 0)
	v.SetDefault("students.cache_ttl", 10*time.Minute)

	v.SetDefault("misc.log_level", "info")
	v.SetDefault("misc.gin_mode", "release")
}

var configValidator = validator.New()

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return errors.New("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return errors.New("server write timeout must be positive")
	}
	if c.Server.IdleTimeout <= 0 {
		return errors.New("server idle timeout must be positive")
	}
	if c.Server.ShutDownTimeout <= 0 {
		return errors.New("server shutdown timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server request timeout must be positive")
	}

	if err := configValidator.Struct(c.Source); err != nil {
		return fmt.Errorf("invalid source config: %w", err)
	}
	if c.Source.RefreshInterval < 0 {
		return errors.New("source refresh interval cannot be negative")
	}

	switch c.Students.Backend {
	case "memory", "":
	case "postgres":
		if c.Students.DatabaseURL == "" {
			return errors.New("students database url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown students backend: %s", c.Students.Backend)
	}
	if c.Students.CacheTTL < 0 {
		return errors.New("students cache ttl cannot be negative")
	}

	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvOrViperPort(v *viper.Viper, envKey, viperKey string) (int, error) {
	if s := os.Getenv(envKey); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", envKey, s, err)
		}
		return port, nil
	}
	return v.GetInt(viperKey), nil
}
