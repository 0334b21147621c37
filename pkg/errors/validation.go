package errors

import (
	"strings"
	"unicode"
)

// maxFlipIDLength bounds flip ids read from scene files.
const maxFlipIDLength = 128

// ValidateFlipID checks that id is usable as a flip id in a scene file.
//
// The rules are conservative:
//   - No empty ids
//   - No whitespace or control characters
//   - No quotes (ids end up inside DOT labels and log fields)
//   - Maximum length of 128 characters
//
// Uniqueness is not checked here; duplicate ids inside one tracked tree are
// a contract violation the engine does not detect.
func ValidateFlipID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidFlipID, "flip id cannot be empty")
	}
	if len(id) > maxFlipIDLength {
		return New(ErrCodeInvalidFlipID, "flip id too long (max %d characters)", maxFlipIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidFlipID, "flip id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, `"'`) {
		return New(ErrCodeInvalidFlipID, "flip id %q contains quotes", id)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}
