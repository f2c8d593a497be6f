// Package config provides configuration loading for the client.
//
// Values resolve in three layers: built-in defaults, an optional YAML profile
// and finally environment variables (a .env file in the working directory is
// honored). Environment always wins so deployments can override a checked-in
// profile without editing it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the client configuration.
type Config struct {
	// Endpoint is the API base URL.
	Endpoint string `yaml:"endpoint"`

	// Username and APIKey are the basic auth credentials.
	Username string `yaml:"username"`
	APIKey   string `yaml:"api_key"`

	// TimeoutSec bounds one HTTP round trip.
	TimeoutSec int64 `yaml:"timeout_sec"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Load resolves the configuration from defaults, the optional YAML profile
// named by REMOTEOBJ_CONFIG and the environment.
func Load() *Config {
	_ = godotenv.Load(".env")

	cfg := defaults()
	if path := os.Getenv("REMOTEOBJ_CONFIG"); path != "" {
		if fileCfg, err := LoadFile(path); err == nil {
			cfg = fileCfg
		}
	}
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML profile. Missing keys keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Endpoint:   "https://api.example.com/rest/v3",
		TimeoutSec: 30,
		LogLevel:   "info",
	}
}

func (c *Config) applyEnv() {
	c.Endpoint = getEnv("REMOTEOBJ_ENDPOINT", c.Endpoint)
	c.Username = getEnv("REMOTEOBJ_USERNAME", c.Username)
	c.APIKey = getEnv("REMOTEOBJ_API_KEY", c.APIKey)
	c.TimeoutSec = getEnvInt64("REMOTEOBJ_TIMEOUT_SEC", c.TimeoutSec)
	c.LogLevel = getEnv("REMOTEOBJ_LOG_LEVEL", c.LogLevel)
}

// Timeout returns TimeoutSec as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
