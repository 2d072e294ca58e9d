package cli

import (
	"errors"
	"fmt"
)

// ExitError is returned by a command that wants a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// ExitCode returns the exit code carried by err, or fallback when err is not
// an ExitError. A nil error yields 0.
func ExitCode(err error, fallback int) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return fallback
}
