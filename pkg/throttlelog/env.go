package throttlelog

import (
	"os"
	"strings"
)

const (
	// EnvVar names the environment variable that selects the runtime mode
	EnvVar = "GUARDRAIL_ENV"

	// fallbackEnvVar is consulted when EnvVar is unset
	fallbackEnvVar = "APP_ENV"
)

// Environment returns the runtime mode from the process environment,
// lower-cased and trimmed. Empty means development.
func Environment() string {
	env := os.Getenv(EnvVar)
	if env == "" {
		env = os.Getenv(fallbackEnvVar)
	}
	return strings.ToLower(strings.TrimSpace(env))
}

// IsProduction reports whether the process runs as a production build,
// where informational logging is suppressed.
func IsProduction() bool {
	return isProductionName(Environment())
}

func isProductionName(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return true
	default:
		return false
	}
}

func knownEnvironment(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "development", "dev", "test", "production", "prod":
		return true
	default:
		return false
	}
}
