// Package util provides logging helpers and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the device-parameter layer
var (
	ErrInvalidParameter = errors.New("invalid parameter value")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrWriteFailed      = errors.New("device write failed")
	ErrCommandFailed    = errors.New("device command failed")
	ErrNotFound         = errors.New("resource not found")
)

// InvalidParameterError reports a value that failed a parameter's validator.
// These are local errors: the offending write is never attempted.
type InvalidParameterError struct {
	Parameter string
	Value     string
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	msg := fmt.Sprintf("invalid value %q for parameter %s", e.Value, e.Parameter)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// NewInvalidParameterError creates an invalid-parameter error
func NewInvalidParameterError(parameter, value, reason string) *InvalidParameterError {
	return &InvalidParameterError{
		Parameter: parameter,
		Value:     value,
		Reason:    reason,
	}
}

// WriteError reports a failed write to a device property location.
// May be transient (device absent, permission denied, value rejected by the
// kernel); callers may retry a full reconciliation pass.
type WriteError struct {
	Location string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Location, e.Err)
}

func (e *WriteError) Unwrap() error {
	return ErrWriteFailed
}

// NewWriteError creates a write error
func NewWriteError(location string, err error) *WriteError {
	return &WriteError{Location: location, Err: err}
}

// CommandError reports a failed device-management command (port attach/detach,
// admin-state change). Output holds whatever the command printed before failing.
type CommandError struct {
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command '%s' failed: %v", e.Command, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += " (output: " + out + ")"
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return ErrCommandFailed
}

// NewCommandError creates a command error
func NewCommandError(command, output string, err error) *CommandError {
	return &CommandError{Command: command, Output: output, Err: err}
}
