package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/yourusername/guardrail/pkg/throttlelog"
	"github.com/yourusername/guardrail/pkg/uploadguard"
	"gopkg.in/yaml.v3"
)

// serverConfig is the optional YAML file named by GUARDRAIL_CONFIG.
//
//	port: "8080"
//	throttle:
//	  window: 1s
//	  max_messages: 5
//	upload_policy:
//	  max_size_bytes: 5242880
//	redis:
//	  addr: localhost:6379
//	  ttl: 1m
type serverConfig struct {
	Port         string              `yaml:"port"`
	Throttle     *throttlelog.Config `yaml:"throttle"`
	UploadPolicy uploadguard.Policy  `yaml:"upload_policy"`
	Redis        redisConfig         `yaml:"redis"`
}

type redisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      string `yaml:"ttl"`
}

func defaultServerConfig() *serverConfig {
	return &serverConfig{
		Port:         "8080",
		Throttle:     throttlelog.NewConfig(),
		UploadPolicy: uploadguard.DefaultPolicy(),
	}
}

// loadServerConfig reads path (if non-empty) over the defaults, then lets
// PORT, REDIS_ADDR and REDIS_PASSWORD override the file.
func loadServerConfig(path string) (*serverConfig, error) {
	cfg := defaultServerConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if cfg.Throttle == nil {
			cfg.Throttle = throttlelog.NewConfig()
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *serverConfig) validate() error {
	var result *multierror.Error

	if c.Port == "" {
		result = multierror.Append(result, errors.New("port cannot be empty"))
	}
	if err := c.Throttle.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.UploadPolicy.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := c.Redis.ttl(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func (r redisConfig) ttl() (time.Duration, error) {
	if r.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid redis ttl %q: %w", r.TTL, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid redis ttl %q: must not be negative", r.TTL)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
