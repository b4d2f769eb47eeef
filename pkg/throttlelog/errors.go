package throttlelog

import "errors"

var (
	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidLimit is returned when the per-window message limit is not positive
	ErrInvalidLimit = errors.New("max messages per window must be positive")

	// ErrInvalidWindow is returned when the window duration is missing or not positive
	ErrInvalidWindow = errors.New("window duration must be positive")

	// ErrUnknownEnvironment is returned for environment names other than development or production
	ErrUnknownEnvironment = errors.New("unknown environment")
)
