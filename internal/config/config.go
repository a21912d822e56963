package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the tool's own settings. Network credentials are not part of it;
// they come from the environment snapshot.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Logger LoggerConfig `mapstructure:"logger"`
	Env    EnvConfig    `mapstructure:"env"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Probe  ProbeConfig  `mapstructure:"probe"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	// Output is "stdout" or "stderr".
	Output string `mapstructure:"output"`
}

// EnvConfig points at the dotenv file holding network credentials.
type EnvConfig struct {
	File string `mapstructure:"file"`
}

// CacheConfig holds settings for the resolved-profile cache.
type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// ProbeConfig holds settings for the endpoint preflight probe.
type ProbeConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "deploy-targets")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("env.file", ".env")
	v.SetDefault("cache.default_expiration", "0s")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("probe.enabled", true)
	v.SetDefault("probe.timeout", "5s")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("DEPLOY_TARGETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c CacheConfig) GetDefaultExpiration() time.Duration {
	return c.DefaultExpiration
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}

func (c ProbeConfig) GetTimeout() time.Duration {
	return c.Timeout
}
