package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Catalog struct {
		Version string `yaml:"version"`
		TTL     string `yaml:"ttl"`
	} `yaml:"catalog"`
	Audienceful struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Tag     string `yaml:"tag"`
	} `yaml:"audienceful"`
	Share struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"share"`
}

// Load reads YAML config from path. Secrets can be overridden from the
// environment so they stay out of the config file.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.URL = v
	}
	if v := os.Getenv("AUDIENCEFUL_API_KEY"); v != "" {
		cfg.Audienceful.APIKey = v
	}
	if cfg.Catalog.Version == "" {
		cfg.Catalog.Version = "v1"
	}
	if cfg.Audienceful.Tag == "" {
		cfg.Audienceful.Tag = "designer-teszt"
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
