package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateExtractPath validates a destination path component derived from a
// partname before it is joined under the extraction root. Partnames come
// from untrusted archives, so anything that could escape the root is
// rejected.
//
// The validation rules are intentionally conservative:
//   - No empty components
//   - No control characters or null bytes
//   - No parent-directory traversal
//   - No absolute Windows-style paths
//   - Maximum length of 256 characters per component
func ValidateExtractPath(rel string) error {
	if rel == "" {
		return New(ErrCodeInvalidPath, "extract path cannot be empty")
	}

	for _, r := range rel {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "extract path contains control characters")
		}
	}

	dangerous := []string{
		"..",   // Parent directory
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}
	for _, pattern := range dangerous {
		if strings.Contains(rel, pattern) {
			return New(ErrCodeInvalidPath, "extract path contains invalid sequence: %q", pattern)
		}
	}

	for _, component := range strings.Split(rel, "/") {
		if len(component) > 256 {
			return New(ErrCodeInvalidPath, "extract path component too long (max 256 characters)")
		}
	}
	return nil
}

// ValidateOutputFile validates a user-supplied output filename: it must be
// a real file path, not a directory, and its parent must be expressible.
func ValidateOutputFile(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q is a directory", path)
	}
	return nil
}
