package throttlelog

import (
	"fmt"
	"time"

	"github.com/yourusername/guardrail/store"
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Logger.
type Option func(*Logger) error

// WithSink sets the zap logger that receives emitted lines.
// If not provided, a stderr logger matching the environment is built.
func WithSink(sink *zap.Logger) Option {
	return func(l *Logger) error {
		if sink == nil {
			return fmt.Errorf("%w: sink cannot be nil", ErrInvalidConfig)
		}
		l.sink = sink
		return nil
	}
}

// WithProduction overrides the environment lookup.
// A production logger drops every informational message.
func WithProduction(production bool) Option {
	return func(l *Logger) error {
		l.suppressed = production
		return nil
	}
}

// WithLimit sets how many informational messages are emitted per window.
func WithLimit(limit int) Option {
	return func(l *Logger) error {
		if limit <= 0 {
			return ErrInvalidLimit
		}
		l.windowConfig.Limit = limit
		return nil
	}
}

// WithWindow sets the throttle window length.
func WithWindow(window time.Duration) Option {
	return func(l *Logger) error {
		if window <= 0 {
			return ErrInvalidWindow
		}
		l.windowConfig.Window = window
		return nil
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) error {
		if now == nil {
			return fmt.Errorf("%w: clock cannot be nil", ErrInvalidConfig)
		}
		l.now = now
		return nil
	}
}

// WithStore keeps the window state in s under key, so several loggers
// (or several replicas, with a Redis store) share one window.
func WithStore(s store.Store, key string) Option {
	return func(l *Logger) error {
		if s == nil {
			return fmt.Errorf("%w: store cannot be nil", ErrInvalidConfig)
		}
		if key == "" {
			return fmt.Errorf("%w: store key cannot be empty", ErrInvalidConfig)
		}
		l.store = s
		l.key = key
		return nil
	}
}

// WithRecorder sets a metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(l *Logger) error {
		l.recorder = recorder
		return nil
	}
}

// WithConfig applies a validated configuration.
func WithConfig(config *Config) Option {
	return func(l *Logger) error {
		if config == nil {
			return fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
		}
		if err := config.Validate(); err != nil {
			return err
		}
		l.applyConfig(config)
		return nil
	}
}

// WithConfigFile loads configuration from a YAML file.
func WithConfigFile(path string) Option {
	return func(l *Logger) error {
		config, err := LoadConfigFromFile(path)
		if err != nil {
			return err
		}
		l.applyConfig(config)
		return nil
	}
}
