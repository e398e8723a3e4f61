package main

import "fmt"

// Exit codes for the deadweight CLI.
const (
	ExitOK             = 0 // Every detector succeeded.
	ExitInvalidArgs    = 1 // Invalid arguments, bad path or no project.
	ExitPartialFailure = 2 // Some detectors failed and --strict was set.
	ExitTotalFailure   = 3 // Every detector failed, or the scan aborted.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the process exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError with a formatted message.
func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
