package uploadguard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Policy)
		wantErr string
	}{
		{name: "default is valid", mutate: func(p *Policy) {}},
		{name: "empty mime list", mutate: func(p *Policy) { p.AllowedMimeTypes = nil }, wantErr: "allowed_mime_types must not be empty"},
		{name: "malformed mime", mutate: func(p *Policy) { p.AllowedMimeTypes = []string{"png"} }, wantErr: `"png" is not a MIME type`},
		{name: "extension without dot", mutate: func(p *Policy) { p.AllowedExtensions = []string{"pdf"} }, wantErr: "must start with a dot"},
		{name: "zero size", mutate: func(p *Policy) { p.MaxSizeBytes = 0 }, wantErr: "max_size_bytes must be positive"},
		{name: "negative timeout", mutate: func(p *Policy) { p.ScanTimeoutMs = -1 }, wantErr: "scan_timeout_ms"},
		{name: "negative dimensions", mutate: func(p *Policy) { p.MaxImageWidth = -1 }, wantErr: "image dimension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := DefaultPolicy()
			tt.mutate(&policy)

			err := policy.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPolicy)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPolicy_ValidateReportsEveryProblem(t *testing.T) {
	policy := Policy{MaxSizeBytes: -1, AllowedExtensions: []string{"jpg"}}

	err := policy.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowed_mime_types must not be empty")
	assert.Contains(t, err.Error(), "must start with a dot")
	assert.Contains(t, err.Error(), "max_size_bytes must be positive")
}

func TestLoadPolicyFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	content := `
allowed_mime_types:
  - image/png
  - text/csv
max_size_bytes: 2097152
scan_for_malware: false
sanitize_filename: true
`
	path := filepath.Join(tmpDir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	policy, err := LoadPolicyFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"image/png", "text/csv"}, policy.AllowedMimeTypes)
	assert.Equal(t, 2*MB, policy.MaxSizeBytes)
	assert.False(t, policy.ScanForMalware)
	assert.True(t, policy.SanitizeFilename)

	// Unspecified fields keep their defaults
	assert.True(t, policy.QuarantineSuspicious)
	assert.Equal(t, DefaultScanTimeoutMs, policy.ScanTimeoutMs)
	assert.Equal(t, DefaultPolicy().AllowedExtensions, policy.AllowedExtensions)

	assert.True(t, ValidateFile(File{ContentType: "text/csv", Size: MB}, *policy))
	assert.False(t, ValidateFile(File{ContentType: "image/jpeg", Size: MB}, *policy))
}

func TestLoadPolicyFromFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := LoadPolicyFromFile(filepath.Join(tmpDir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	badYAML := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("allowed_mime_types: [image/png\n"), 0644))
	_, err = LoadPolicyFromFile(badYAML)
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	invalid := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("max_size_bytes: 0\n"), 0644))
	_, err = LoadPolicyFromFile(invalid)
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
