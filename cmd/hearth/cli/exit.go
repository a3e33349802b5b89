// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError makes the binary exit with Code without printing an error
// line. The command has already written whatever the user needs, as
// "layout validate" does for an invalid document.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode is checked by main to tell a handled non-zero exit from an
// error to print.
func (e *ExitError) ExitCode() int {
	return e.Code
}
