package errors

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ParseLabel parses a user-typed node label.
// Labels are plain base-10 integers; surrounding whitespace is ignored.
func ParseLabel(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, New(ErrCodeInvalidLabel, "label cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, New(ErrCodeInvalidLabel, "label must be an integer: %q", raw)
	}
	return n, nil
}

// ValidateCanvasID validates a stored canvas identifier.
// Identifiers are UUIDs generated by the store; anything else is rejected
// before it reaches a file path or a database query.
func ValidateCanvasID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "canvas id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return New(ErrCodeInvalidID, "canvas id must be a UUID: %q", id)
	}
	return nil
}

// ValidateSnapshotPath validates a canvas snapshot path for the CLI.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .json or .toml
func ValidateSnapshotPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported snapshot format %q (want .json or .toml)", filepath.Ext(path))
	}
}
