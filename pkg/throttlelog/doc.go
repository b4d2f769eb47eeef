// Package throttlelog provides a leveled diagnostic logger that keeps
// informational output from flooding the process.
//
// Informational messages pass through a fixed throttle window: the first
// five messages in any one-second window are emitted, the sixth is replaced
// by a single throttled notice, and the rest are dropped until the window
// resets. Warnings and errors are never throttled.
//
// # Quick Start
//
//	logger, err := throttlelog.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Log("quotes", "loaded quote list", map[string]int{"count": 12})
//	logger.Warn("upload", "retrying upload", nil)
//	logger.Error("budget", "failed to save budget", err)
//
// Lines render as "[category] message data"; nil data renders as nothing.
//
// # Environment
//
// The runtime mode is read once, when the logger is built, from
// GUARDRAIL_ENV (falling back to APP_ENV). In "production" Log is a no-op
// that neither writes output nor touches the window.
//
//	GUARDRAIL_ENV=production ./server
//
// # Configuration
//
// Load configuration from YAML file:
//
//	logger, err := throttlelog.New(
//	    throttlelog.WithConfigFile("throttle.yaml"),
//	)
//
// Example YAML configuration:
//
//	environment: development
//	window: 1s
//	max_messages: 5
//
// # Shared windows
//
// By default the window lives in process memory. Replicas that should share
// one window can keep it in Redis:
//
//	redisStore := store.NewRedisStore(store.RedisConfig{Addr: "localhost:6379"})
//	logger, _ := throttlelog.New(throttlelog.WithStore(redisStore, "web"))
//
// # Concurrency
//
// The window counter and timestamp are guarded by a mutex, so a single
// Logger can be shared by every goroutine in the application.
package throttlelog
