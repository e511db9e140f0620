// Package config loads the service configuration from an optional YAML
// file and INCORPORATE_* environment variables.
package config

import (
	"fmt"
	"net"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

type Config struct {
	Env      string `yaml:"env" env:"INCORPORATE_ENV" env-default:"local"`
	Greeting string `yaml:"greeting" env:"INCORPORATE_GREETING" env-default:""`

	Log struct {
		Level  string `yaml:"level" env:"INCORPORATE_LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"INCORPORATE_LOG_FORMAT" env-default:"text"`
	} `yaml:"log"`

	Listen struct {
		BindIP string `yaml:"bind_ip" env:"INCORPORATE_BIND_IP" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env:"INCORPORATE_PORT" env-default:"8080"`
	} `yaml:"listen"`

	Catalog struct {
		Path string `yaml:"path" env:"INCORPORATE_CATALOG" env-default:""`
	} `yaml:"catalog"`

	Store struct {
		Driver  string        `yaml:"driver" env:"INCORPORATE_STORE" env-default:"memory"`
		Path    string        `yaml:"path" env:"INCORPORATE_STORE_PATH" env-default:".incorporate/sessions"`
		LockTTL time.Duration `yaml:"lock_ttl" env:"INCORPORATE_LOCK_TTL" env-default:"30s"`
		Redis   struct {
			Addr     string        `yaml:"addr" env:"INCORPORATE_REDIS_ADDR" env-default:"127.0.0.1:6379"`
			Password string        `yaml:"password" env:"INCORPORATE_REDIS_PASSWORD" env-default:""`
			DB       int           `yaml:"db" env:"INCORPORATE_REDIS_DB" env-default:"0"`
			Prefix   string        `yaml:"prefix" env:"INCORPORATE_REDIS_PREFIX" env-default:"incorporate:session:"`
			TTL      time.Duration `yaml:"ttl" env:"INCORPORATE_REDIS_TTL" env-default:"0s"`

			// Zero values in the file fall back to env-default, so the flag is negative.
			NoLocking bool `yaml:"no_locking" env:"INCORPORATE_REDIS_NO_LOCKING" env-default:"false"`
		} `yaml:"redis"`
	} `yaml:"store"`

	Leads struct {
		Driver string `yaml:"driver" env:"INCORPORATE_LEADS" env-default:"memory"`
		Path   string `yaml:"path" env:"INCORPORATE_LEADS_PATH" env-default:".incorporate/leads.jsonl"`
		Mongo  struct {
			URI        string `yaml:"uri" env:"INCORPORATE_MONGO_URI" env-default:"mongodb://127.0.0.1:27017"`
			Database   string `yaml:"database" env:"INCORPORATE_MONGO_DATABASE" env-default:"incorporate"`
			Collection string `yaml:"collection" env:"INCORPORATE_MONGO_COLLECTION" env-default:"leads"`
		} `yaml:"mongo"`
		// EncryptionKey is a base64 AES-256 key; contact fields are sealed when set.
		EncryptionKey string   `yaml:"encryption_key" env:"INCORPORATE_LEADS_KEY"`
		FallbackKeys  []string `yaml:"fallback_keys" env:"INCORPORATE_LEADS_FALLBACK_KEYS" env-separator:","`
		Redact        bool     `yaml:"redact" env:"INCORPORATE_LEADS_REDACT" env-default:"false"`
	} `yaml:"leads"`

	Metrics struct {
		Enabled bool `yaml:"enabled" env:"INCORPORATE_METRICS" env-default:"false"`
	} `yaml:"metrics"`

	Chat struct {
		Pacing   time.Duration `yaml:"pacing" env:"INCORPORATE_CHAT_PACING" env-default:"400ms"`
		WordWrap int           `yaml:"word_wrap" env:"INCORPORATE_CHAT_WORD_WRAP" env-default:"80"`
	} `yaml:"chat"`
}

// Load reads path (YAML) and applies environment overrides. An empty path
// reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("config: %w; %s", err, desc)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains([]string{DriverMemory, DriverFile, DriverRedis}, c.Store.Driver) {
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if !slices.Contains([]string{DriverMemory, DriverFile, DriverMongo}, c.Leads.Driver) {
		return fmt.Errorf("config: unknown leads driver %q", c.Leads.Driver)
	}
	if c.Leads.Redact && c.Leads.EncryptionKey != "" {
		return fmt.Errorf("config: leads redact and encryption_key are mutually exclusive")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.Chat.Pacing < 0 {
		return fmt.Errorf("config: chat pacing must not be negative")
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Listen.BindIP, c.Listen.Port)
}
