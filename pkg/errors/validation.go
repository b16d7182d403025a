package errors

import (
	"strings"
	"unicode"
)

// maxIdentifierLength bounds node, edge endpoint and group identifiers.
const maxIdentifierLength = 1024

// ValidateIdentifier validates a node or group identifier taken from a
// statement list.
//
// The rules are deliberately loose because identifiers double as labels:
//   - No empty identifiers
//   - No control characters other than tab and newline
//   - Maximum length of 1024 bytes
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", maxIdentifierLength)
	}

	for _, r := range id {
		if r == '\t' || r == '\n' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters: %q", id)
		}
	}

	return nil
}

// ValidatePath validates a file path supplied by a remote caller, such as a
// background image referenced by a statement posted to the HTTP API.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
