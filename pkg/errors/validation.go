package errors

import (
	"strings"
	"unicode"
)

// outputFormats are the artifact formats the renderer supports.
var outputFormats = map[string]bool{
	"json":     true,
	"markdown": true,
	"dot":      true,
	"svg":      true,
}

// ValidateFormat validates an output format name.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !outputFormats[format] {
		return New(ErrCodeInvalidFormat, "unsupported format %q (json, markdown, dot, svg)", format)
	}
	return nil
}

// ValidateDamping validates a PageRank damping factor.
func ValidateDamping(d float64) error {
	if d < 0 || d >= 1 {
		return New(ErrCodeInvalidDamping, "damping must be in [0, 1), got %v", d)
	}
	return nil
}

// ValidateDocumentKey validates a document key received from the API or
// CLI before it is looked up. It rejects keys that could be used for path
// traversal.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters or null bytes
//   - No path traversal sequences (.., absolute paths)
//   - No backslashes
//   - Maximum length of 256 characters
func ValidateDocumentKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "document key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "document key too long (max 256 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "document key contains control characters")
		}
	}

	if strings.HasPrefix(key, "/") {
		return New(ErrCodeInvalidInput, "document key must be relative")
	}
	for _, pattern := range []string{"..", "//", "\\", "\x00"} {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidInput, "document key contains invalid sequence %q", pattern)
		}
	}
	return nil
}
