// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/glide/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess = 0
	// ExitGeneralError indicates a general or unknown error.
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments.
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error.
	ExitConfigError = 3
	// ExitTerminalError indicates a missing or undersized terminal.
	ExitTerminalError = 4
	// ExitNotFoundError indicates a scenario or file was not found.
	ExitNotFoundError = 7
	// ExitInvariantError indicates a replay broke a layout invariant.
	ExitInvariantError = 9
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string
	Action  string
	Reason  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ConfigError wraps a failure to load or write the config file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// InvariantError reports a replay that broke the layout invariants.
type InvariantError struct {
	Scenario   string
	Violations int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("scenario %s: %d invariant violation(s)", e.Scenario, e.Violations)
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err to w in the standard format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// GetExitCode maps an error to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		invariantErr *InvariantError
		notFoundErr  *NotFoundError
		configErr    *ConfigError
		validateErrs config.ValidateErrors
		ttyErr       *TTYRequiredError
		sizeErr      *TerminalTooSmallError
	)
	switch {
	case errors.As(err, &invariantErr):
		return ExitInvariantError
	case errors.As(err, &notFoundErr):
		return ExitNotFoundError
	case errors.As(err, &configErr), errors.As(err, &validateErrs):
		return ExitConfigError
	case errors.As(err, &ttyErr), errors.As(err, &sizeErr):
		return ExitTerminalError
	}

	// cobra reports usage problems as plain errors.
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "accepts ", "requires "} {
		if strings.HasPrefix(msg, prefix) {
			return ExitUsageError
		}
	}
	if strings.Contains(msg, "invalid argument") {
		return ExitUsageError
	}
	return ExitGeneralError
}
