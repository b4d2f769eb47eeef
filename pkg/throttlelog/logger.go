package throttlelog

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/yourusername/guardrail/core"
	"github.com/yourusername/guardrail/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultKey is the store key used when no key is configured.
const DefaultKey = "default"

// ThrottleCategory is the category of the one-time throttled notice.
const ThrottleCategory = "throttle"

// Recorder receives throttling outcomes, e.g. metrics.Metrics.
type Recorder interface {
	RecordLog(verdict core.Verdict)
	RecordSeverity(level string)
}

// Logger emits leveled diagnostic lines, rate-limiting informational ones.
//
// Log is throttled per window and disabled in production; Warn and Error
// always emit. A Logger is safe for concurrent use; share one instance for
// the lifetime of the application.
type Logger struct {
	mu           sync.Mutex
	window       *core.FixedWindow
	windowConfig core.Config
	store        store.Store
	key          string
	suppressed   bool
	sink         *zap.Logger
	now          func() time.Time
	recorder     Recorder
}

// New creates a Logger. The production flag is read from the environment
// once, here; WithProduction or a config Environment override it.
//
// Example:
//
//	logger, err := throttlelog.New(
//	    throttlelog.WithLimit(5),
//	    throttlelog.WithWindow(time.Second),
//	)
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		windowConfig: core.Config{
			Limit:  core.DefaultLimit,
			Window: core.DefaultWindow,
		},
		key:        DefaultKey,
		suppressed: IsProduction(),
		now:        time.Now,
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if l.sink == nil {
		sink, err := NewSink(l.suppressed)
		if err != nil {
			return nil, fmt.Errorf("failed to build log sink: %w", err)
		}
		l.sink = sink
	}
	l.sink = l.sink.WithOptions(zap.AddCallerSkip(1))

	if l.store == nil {
		l.store = store.NewMemoryStore()
	}

	l.window = core.NewFixedWindow(l.windowConfig)

	// The window starts when the logger is built unless a shared store already holds one
	if !l.suppressed {
		l.store.Update(l.key, func(current *core.WindowState) *core.WindowState {
			if current != nil {
				return current
			}
			return &core.WindowState{ResetAt: l.now()}
		})
	}

	return l, nil
}

// NewSink builds the default stderr sink. Development output uses the
// console encoder, colored only when stderr is a terminal; production
// output is JSON.
func NewSink(production bool) (*zap.Logger, error) {
	return SinkConfig(production, isatty.IsTerminal(os.Stderr.Fd())).Build()
}

// SinkConfig is the zap configuration behind NewSink. Sampling is always
// off: warnings and errors must never be dropped.
func SinkConfig(production, color bool) zap.Config {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if color {
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg
}

func (l *Logger) applyConfig(config *Config) {
	l.windowConfig = config.ToWindowConfig()
	if config.Environment != "" {
		l.suppressed = isProductionName(config.Environment)
	}
}

// Log emits an informational line unless the current window is throttled.
// In production it returns immediately without touching any state.
func (l *Logger) Log(category, message string, data any) {
	if l.suppressed {
		return
	}

	var result core.CheckResult
	l.mu.Lock()
	l.store.Update(l.key, func(current *core.WindowState) *core.WindowState {
		next, r := l.window.Check(current, l.now())
		result = r
		return next
	})
	l.mu.Unlock()

	switch result.Verdict {
	case core.Emit:
		l.sink.Info(FormatLine(category, message, data), zap.String("category", category))
	case core.Notice:
		l.sink.Warn(l.noticeLine(), zap.String("category", ThrottleCategory))
	}

	if l.recorder != nil {
		l.recorder.RecordLog(result.Verdict)
	}
}

// Warn always emits, regardless of environment or window state.
func (l *Logger) Warn(category, message string, data any) {
	l.sink.Warn(FormatLine(category, message, data), zap.String("category", category))
	if l.recorder != nil {
		l.recorder.RecordSeverity("warn")
	}
}

// Error always emits, regardless of environment or window state.
// A nil err renders as the empty string.
func (l *Logger) Error(category, message string, err error) {
	var data any
	if err != nil {
		data = err
	}
	l.sink.Error(FormatLine(category, message, data), zap.String("category", category))
	if l.recorder != nil {
		l.recorder.RecordSeverity("error")
	}
}

// Suppressed reports whether informational logging is disabled.
func (l *Logger) Suppressed() bool {
	return l.suppressed
}

// Throttled reports whether the current window has reached its limit.
// It does not advance the window.
func (l *Logger) Throttled() bool {
	if l.suppressed {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	state := l.store.Get(l.key)
	if state == nil || l.now().Sub(state.ResetAt) > l.windowConfig.Window {
		return false
	}
	return state.Throttled(l.windowConfig.Limit)
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	return l.sink.Sync()
}

func (l *Logger) noticeLine() string {
	return FormatLine(ThrottleCategory,
		fmt.Sprintf("more than %d log messages within %s, suppressing output until the window resets",
			l.windowConfig.Limit, l.windowConfig.Window), nil)
}
