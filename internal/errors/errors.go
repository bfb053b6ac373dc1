// Package errors provides centralized error handling for syncstatus.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrNotSignedIn indicates an account operation needs a signed-in account
	// but no session exists.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrLogoutFailed indicates the account engine could not complete a sign out.
	// The account screen stays open when this is returned.
	ErrLogoutFailed = errors.New("logout failed")

	// ErrSyncFailed indicates a sync run finished with an error.
	ErrSyncFailed = errors.New("sync failed")

	// ErrSyncInProgress indicates a blocking sync was requested while another
	// run was still in flight.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrSyncTimeout indicates a sync run exceeded the configured timeout.
	ErrSyncTimeout = errors.New("sync timed out")

	// ErrStoreUnavailable indicates the last-sync store could not be opened or reached.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUnknownStoreBackend indicates an unsupported store.backend value.
	ErrUnknownStoreBackend = errors.New("unknown store backend")

	// ErrSessionCorrupted indicates the persisted account session is unreadable.
	ErrSessionCorrupted = errors.New("account session corrupted")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidSync indicates an invalid sync configuration value.
	ErrConfigInvalidSync = errors.New("invalid sync configuration")

	// ErrConfigInvalidStore indicates an invalid store configuration value.
	ErrConfigInvalidStore = errors.New("invalid store configuration")

	// ErrConfigInvalidUI indicates an invalid UI configuration value.
	ErrConfigInvalidUI = errors.New("invalid UI configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrNonInteractiveMode indicates that an operation requiring confirmation
	// was attempted in non-interactive mode without the force flag.
	ErrNonInteractiveMode = errors.New("use --force in non-interactive mode")

	// ErrTerminalRequired indicates an interactive screen was requested
	// without a terminal attached.
	ErrTerminalRequired = errors.New("interactive terminal required")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
