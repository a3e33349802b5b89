// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command failures so scripts driving hearth
// can branch on the exit code instead of the message.
type ErrorCategory string

const (
	// CategoryValidation is bad input: wrong argument count, an
	// unparseable number, an unknown axis.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound is a reference to something absent: an unknown
	// pane id, profile, or revision.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryRejected is a well-formed edit the layout refuses:
	// removing the last pane, shrinking below the flex floor.
	CategoryRejected ErrorCategory = "rejected"

	// CategoryInternal is everything else: I/O and database errors.
	CategoryInternal ErrorCategory = "internal"
)

// exitCodes maps categories to process exit codes.
var exitCodes = map[ErrorCategory]int{
	CategoryInternal:   1,
	CategoryValidation: 2,
	CategoryNotFound:   3,
	CategoryRejected:   4,
}

// CommandError is a categorized error. It wraps the underlying error so
// errors.Is sees through it.
type CommandError struct {
	Category ErrorCategory
	Err      error
}

func (e *CommandError) Error() string { return e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for the category.
func (e *CommandError) ExitCode() int {
	if code, ok := exitCodes[e.Category]; ok {
		return code
	}
	return 1
}

// Validation reports bad input.
func Validation(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound reports a missing referent.
func NotFound(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Rejected reports an edit the layout refused.
func Rejected(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryRejected, Err: fmt.Errorf(format, args...)}
}

// Internal reports an unexpected failure.
func Internal(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
