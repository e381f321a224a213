package errors

import (
	"fmt"
)

// newError wraps the sentinel err with a formatted context message,
// so callers can still match it with errors.Is.
func newError(err error, format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if err == nil {
		return fmt.Errorf("vfs: %s", text)
	}

	return fmt.Errorf("%w: %s", err, text)
}

// wrapCause attaches an underlying cause next to the sentinel.
func wrapCause(err, cause error, format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if cause == nil {
		return newError(err, "%s", text)
	}

	return fmt.Errorf("%w: %s: %w", err, text, cause)
}
