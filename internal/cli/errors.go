// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/bookchat-tui/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError covers failed exchanges and anything unclassified
	ExitGeneralError = 1
	// ExitUsageError indicates invalid flags or arguments
	ExitUsageError = 2
	// ExitConfigError indicates an unreadable or invalid config file
	ExitConfigError = 3
)

// =============================================================================
// COMMAND ERRORS
// =============================================================================

// CommandError carries an exit code with the underlying error.
type CommandError struct {
	Code int
	Err  error

	// Reported is set when the command already told the user.
	Reported bool
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &CommandError{Code: ExitUsageError, Err: err}
}

func configError(path string, err error) error {
	return &CommandError{Code: ExitConfigError, Err: fmt.Errorf("config %s: %w", path, err)}
}

// reported marks err as already printed.
func reported(err error) error {
	return &CommandError{Code: ExitGeneralError, Err: err, Reported: true}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code
	}
	var verrs config.ValidateErrors
	if errors.As(err, &verrs) {
		return ExitConfigError
	}
	return ExitGeneralError
}

// printError writes err to w unless the command already did.
func printError(w io.Writer, err error) {
	var ce *CommandError
	if errors.As(err, &ce) && ce.Reported {
		return
	}
	fmt.Fprintln(w, errorStyle.Render("Error:"), err)
}
