package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge       = errors.New("file too large")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

// FileConstraints are the limits a file field places on uploads.
type FileConstraints struct {
	MaxSize       int64  // bytes
	AcceptedTypes string // comma-separated patterns, empty accepts everything
}

// CheckFile validates a candidate file against a field's constraints. Size is
// checked first, then the accepted-types patterns. The same rules run on the
// client pre-check and again server-side before storage.
func CheckFile(name, mimeType string, size int64, constraints FileConstraints) error {
	if constraints.MaxSize > 0 && size > constraints.MaxSize {
		return fmt.Errorf("%w: maximum size is %d MB", ErrFileTooLarge, constraints.MaxSize>>20)
	}

	patterns := splitPatterns(constraints.AcceptedTypes)
	if len(patterns) == 0 {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(name))
	mime := strings.ToLower(mimeType)

	for _, pattern := range patterns {
		if matchesPattern(pattern, ext, mime) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, name)
}

// matchesPattern applies one accepted-type pattern:
//   - ".pdf" matches the file extension, case-insensitive
//   - "image/png" matches the MIME type exactly
//   - "image/*" matches any MIME type with that prefix
//   - a bare keyword matches as a substring of the MIME type or extension
func matchesPattern(pattern, ext, mime string) bool {
	pattern = strings.ToLower(pattern)

	if strings.HasPrefix(pattern, ".") {
		return ext == pattern
	}

	if strings.Contains(pattern, "/") {
		if strings.HasSuffix(pattern, "/*") {
			return strings.HasPrefix(mime, strings.TrimSuffix(pattern, "*"))
		}
		return mime == pattern
	}

	return strings.Contains(mime, pattern) || strings.Contains(ext, pattern)
}

func splitPatterns(acceptedTypes string) []string {
	var patterns []string
	for _, p := range strings.Split(acceptedTypes, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
