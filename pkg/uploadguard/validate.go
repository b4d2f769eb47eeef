package uploadguard

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// File is the minimal description of an upload candidate.
type File struct {
	Name        string // Original filename; informational only
	ContentType string // Declared MIME type
	Size        int64  // Size in bytes
}

// Ext returns the lower-case filename extension, including the dot.
func (f File) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// FileFromHeader describes a multipart upload by its declared type and size.
func FileFromHeader(header *multipart.FileHeader) File {
	if header == nil {
		return File{}
	}
	return File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
}

// ValidateFile reports whether file is acceptable under policy.
//
// Only the declared MIME type and the size are checked. A false result
// means "reject"; use Check to learn which rule failed.
func ValidateFile(file File, policy Policy) bool {
	return Check(file, policy) == nil
}

// Check applies the same rules as ValidateFile, in the same order, and
// returns the first failure: ErrMimeTypeNotAllowed or ErrFileTooLarge,
// wrapped with detail.
func Check(file File, policy Policy) error {
	if !policy.AllowsMimeType(file.ContentType) {
		return fmt.Errorf("%w: %q", ErrMimeTypeNotAllowed, file.ContentType)
	}

	if file.Size > policy.MaxSizeBytes {
		return fmt.Errorf("%w: %s exceeds the %s limit", ErrFileTooLarge,
			humanize.IBytes(uint64(file.Size)), humanize.IBytes(uint64(policy.MaxSizeBytes)))
	}

	return nil
}
