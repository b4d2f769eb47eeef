package guardrail

import (
	"github.com/yourusername/guardrail/middleware"
	"github.com/yourusername/guardrail/pkg/throttlelog"
	"github.com/yourusername/guardrail/pkg/uploadguard"
)

// Re-export main types for convenience
type (
	Logger      = throttlelog.Logger
	Policy      = uploadguard.Policy
	File        = uploadguard.File
	UploadGuard = middleware.UploadGuard
	GuardConfig = middleware.Config
)

// NewLogger creates a throttled logger
var NewLogger = throttlelog.New

// DefaultPolicy returns the default upload policy
var DefaultPolicy = uploadguard.DefaultPolicy

// ValidateFile reports whether a file passes the policy's MIME allow-list and size cap
var ValidateFile = uploadguard.ValidateFile

// NewUploadGuard creates upload validating middleware
var NewUploadGuard = middleware.NewUploadGuard
