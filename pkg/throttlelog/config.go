package throttlelog

import (
	"fmt"
	"os"
	"time"

	"github.com/yourusername/guardrail/core"
	"gopkg.in/yaml.v3"
)

// Config holds the throttled logger configuration.
type Config struct {
	// Environment overrides the GUARDRAIL_ENV lookup when set.
	// "production" (or "prod") suppresses informational logging entirely.
	Environment string `yaml:"environment,omitempty"`

	// Window is the throttle window length
	// Format: "1s", "500ms"
	Window string `yaml:"window,omitempty"`

	// MaxMessages is the number of informational messages emitted per window
	// before the throttled notice fires
	MaxMessages int `yaml:"max_messages,omitempty"`
}

// NewConfig creates a new Config with the standard window: 5 messages per second.
func NewConfig() *Config {
	return &Config{
		Window:      core.DefaultWindow.String(),
		MaxMessages: core.DefaultLimit,
	}
}

// LoadConfigFromFile loads configuration from a YAML file.
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrInvalidConfig, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration, applies defaults and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidConfig, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Window == "" {
		c.Window = core.DefaultWindow.String()
	}
	if c.MaxMessages == 0 {
		c.MaxMessages = core.DefaultLimit
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxMessages <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidLimit)
	}

	window, err := time.ParseDuration(c.Window)
	if err != nil || window <= 0 {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrInvalidWindow, c.Window)
	}

	if !knownEnvironment(c.Environment) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnknownEnvironment, c.Environment)
	}

	return nil
}

// WindowDuration returns the parsed window, falling back to the default
// when the value is missing or malformed.
func (c *Config) WindowDuration() time.Duration {
	window, err := time.ParseDuration(c.Window)
	if err != nil || window <= 0 {
		return core.DefaultWindow
	}
	return window
}

// ToWindowConfig converts the configuration into a core window policy.
func (c *Config) ToWindowConfig() core.Config {
	return core.Config{
		Limit:  c.MaxMessages,
		Window: c.WindowDuration(),
	}
}
