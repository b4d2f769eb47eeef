package uploadguard

import (
	"path/filepath"
	"strings"
)

const (
	maxFilenameLength = 100
	maxKeptExtension  = 10
)

// SanitizeFilename strips path components and replaces every byte outside
// [A-Za-z0-9._-] with an underscore, so multi-byte characters become one
// underscore per byte. Names longer than 100 bytes are truncated, keeping a
// short extension when present.
func SanitizeFilename(filename string) string {
	var b strings.Builder
	b.Grow(len(filename))

	base := filepath.Base(filename)
	for i := 0; i < len(base); i++ {
		if c := base[i]; isAllowedFilenameChar(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	name := b.String()

	// filepath.Base maps "" to "." and keeps "..", which name directories
	// rather than files; an empty check alone never sees them.
	if strings.Trim(name, ".") == "" {
		return "file"
	}

	if len(name) <= maxFilenameLength {
		return name
	}
	if ext := filepath.Ext(name); ext != "" && len(ext) < maxKeptExtension {
		return name[:maxFilenameLength-len(ext)] + ext
	}
	return name[:maxFilenameLength]
}

func isAllowedFilenameChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return c == '-' || c == '_' || c == '.'
}
