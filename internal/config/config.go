// Package config loads CLI and server configuration from a YAML file
// and environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env:"COFFEEHELPER_ENV" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"COFFEEHELPER_LOG_LEVEL" env-default:"info"`
	DataDir  string `yaml:"data_dir" env:"COFFEEHELPER_DATA_DIR" env-default:""`
	Listen   struct {
		BindIP string `yaml:"bind_ip" env:"COFFEEHELPER_BIND_IP" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env:"COFFEEHELPER_PORT" env-default:"8090"`
	} `yaml:"listen"`
	Redis struct {
		Enabled    bool   `yaml:"enabled" env:"COFFEEHELPER_REDIS_ENABLED" env-default:"false"`
		Addr       string `yaml:"addr" env:"COFFEEHELPER_REDIS_ADDR" env-default:"127.0.0.1:6379"`
		Password   string `yaml:"password" env:"COFFEEHELPER_REDIS_PASSWORD" env-default:""`
		DB         int    `yaml:"db" env:"COFFEEHELPER_REDIS_DB" env-default:"0"`
		TTLMinutes int    `yaml:"ttl_minutes" env:"COFFEEHELPER_REDIS_TTL_MINUTES" env-default:"60"`
	} `yaml:"redis"`
	Session struct {
		// EncryptionKey is a base64-encoded 32-byte key. When set, session
		// state is sealed with AES-GCM before it reaches the store.
		EncryptionKey string `yaml:"encryption_key" env:"COFFEEHELPER_SESSION_KEY" env-default:""`
	} `yaml:"session"`
	Sqlite struct {
		Path string `yaml:"path" env:"COFFEEHELPER_SQLITE_PATH" env-default:""`
	} `yaml:"sqlite"`
	OpenAI struct {
		ApiKey string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		Model  string `yaml:"model" env:"COFFEEHELPER_OPENAI_MODEL" env-default:""`
	} `yaml:"openai"`
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Listen.BindIP + ":" + c.Listen.Port
}

// Load reads config from path if it exists, then applies environment
// overrides. An empty path or a missing file falls back to env-only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				desc, _ := cleanenv.GetDescription(cfg, nil)
				return nil, fmt.Errorf("read config %s: %w; %s", path, err, desc)
			}
			return cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
