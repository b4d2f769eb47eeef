package uploadguard

import "errors"

var (
	// ErrMimeTypeNotAllowed is returned when the declared MIME type is not in the allow-list
	ErrMimeTypeNotAllowed = errors.New("mime type not allowed")

	// ErrFileTooLarge is returned when the file exceeds the policy size cap
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidPolicy is returned when a policy cannot be loaded or is inconsistent
	ErrInvalidPolicy = errors.New("invalid upload policy")
)

// Reason returns a short machine-readable code for a validation error,
// suitable for metrics labels and API error payloads.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMimeTypeNotAllowed):
		return "mime_type"
	case errors.Is(err, ErrFileTooLarge):
		return "size"
	default:
		return "unknown"
	}
}
