package uploadguard

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Size units for policy limits.
const (
	KB int64 = 1 << 10
	MB int64 = 1 << 20
)

// DefaultMaxSizeBytes is the default upload cap (10 MiB).
const DefaultMaxSizeBytes = 10 * MB

// DefaultScanTimeoutMs is the default malware scan timeout.
const DefaultScanTimeoutMs = 30000

// Policy describes which uploads are acceptable.
//
// Only AllowedMimeTypes and MaxSizeBytes are enforced by ValidateFile.
// The remaining fields are configuration surface for enforcement that
// happens elsewhere (or not yet); they are carried through unchanged.
type Policy struct {
	AllowedMimeTypes  []string `yaml:"allowed_mime_types" json:"allowedMimeTypes"`
	AllowedExtensions []string `yaml:"allowed_extensions,omitempty" json:"allowedExtensions,omitempty"`
	MaxSizeBytes      int64    `yaml:"max_size_bytes" json:"maxSizeBytes"`

	ScanForMalware       bool `yaml:"scan_for_malware,omitempty" json:"scanForMalware,omitempty"`
	QuarantineSuspicious bool `yaml:"quarantine_suspicious,omitempty" json:"quarantineSuspicious,omitempty"`
	ScanTimeoutMs        int  `yaml:"scan_timeout_ms,omitempty" json:"scanTimeoutMs,omitempty"`
	ValidateSignature    bool `yaml:"validate_signature,omitempty" json:"validateSignature,omitempty"`
	MaxImageWidth        int  `yaml:"max_image_width,omitempty" json:"maxImageWidth,omitempty"`
	MaxImageHeight       int  `yaml:"max_image_height,omitempty" json:"maxImageHeight,omitempty"`
	StripMetadata        bool `yaml:"strip_metadata,omitempty" json:"stripMetadata,omitempty"`
	SanitizeFilename     bool `yaml:"sanitize_filename,omitempty" json:"sanitizeFilename,omitempty"`
}

// DefaultPolicy returns the default policy: common images and PDF up to 10 MiB,
// with malware scanning and quarantine requested.
// Each call returns a fresh copy, so callers may modify it freely.
func DefaultPolicy() Policy {
	return Policy{
		AllowedMimeTypes:     []string{"image/jpeg", "image/png", "image/gif", "application/pdf"},
		AllowedExtensions:    []string{".jpg", ".jpeg", ".png", ".gif", ".pdf"},
		MaxSizeBytes:         DefaultMaxSizeBytes,
		ScanForMalware:       true,
		QuarantineSuspicious: true,
		ScanTimeoutMs:        DefaultScanTimeoutMs,
	}
}

// AllowsMimeType reports whether mimeType is in the allow-list (exact match).
func (p Policy) AllowsMimeType(mimeType string) bool {
	for _, allowed := range p.AllowedMimeTypes {
		if allowed == mimeType {
			return true
		}
	}
	return false
}

// Validate checks the policy for internal consistency and reports every problem found.
func (p *Policy) Validate() error {
	var result *multierror.Error

	if len(p.AllowedMimeTypes) == 0 {
		result = multierror.Append(result, errors.New("allowed_mime_types must not be empty"))
	}
	for _, m := range p.AllowedMimeTypes {
		if !strings.Contains(m, "/") {
			result = multierror.Append(result, fmt.Errorf("allowed_mime_types: %q is not a MIME type", m))
		}
	}
	for _, ext := range p.AllowedExtensions {
		if !strings.HasPrefix(ext, ".") {
			result = multierror.Append(result, fmt.Errorf("allowed_extensions: %q must start with a dot", ext))
		}
	}
	if p.MaxSizeBytes <= 0 {
		result = multierror.Append(result, errors.New("max_size_bytes must be positive"))
	}
	if p.ScanTimeoutMs < 0 {
		result = multierror.Append(result, errors.New("scan_timeout_ms cannot be negative"))
	}
	if p.MaxImageWidth < 0 || p.MaxImageHeight < 0 {
		result = multierror.Append(result, errors.New("image dimension bounds cannot be negative"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	return nil
}

// LoadPolicyFromFile loads a policy from a YAML file.
// Fields missing from the file keep their DefaultPolicy values.
func LoadPolicyFromFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read policy file: %v", ErrInvalidPolicy, err)
	}

	return ParsePolicy(data)
}

// ParsePolicy parses a YAML policy on top of DefaultPolicy and validates it.
func ParsePolicy(data []byte) (*Policy, error) {
	policy := DefaultPolicy()
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidPolicy, err)
	}

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return &policy, nil
}
