package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice (not a map) because errors.Is() must walk wrapped chains.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrNotSignedIn,
		info: ErrorInfo{
			Message: "No account is signed in.",
			Action:  "Run: syncstatus login --email you@example.com",
		},
	},
	{
		err: ErrLogoutFailed,
		info: ErrorInfo{
			Message: "Signing out did not complete.",
			Action:  "Try signing out again.",
		},
	},
	{
		err: ErrSyncFailed,
		info: ErrorInfo{
			Message: "The last sync failed.",
			Action:  "Run: syncstatus sync --wait",
		},
	},
	{
		err: ErrSyncInProgress,
		info: ErrorInfo{
			Message: "A sync is already running.",
			Action:  "Wait for it to finish, then try again.",
		},
	},
	{
		err: ErrSyncTimeout,
		info: ErrorInfo{
			Message: "The sync took too long and was stopped.",
			Action:  "Increase sync.timeout in your config.",
		},
	},
	{
		err: ErrStoreUnavailable,
		info: ErrorInfo{
			Message: "The sync history store could not be reached.",
			Action:  "Check store.backend, store.path and store.redis_url in your config.",
		},
	},
	{
		err: ErrUnknownStoreBackend,
		info: ErrorInfo{
			Message: "The configured store backend is not supported.",
			Action:  "Set store.backend to bolt, redis or memory.",
		},
	},
	{
		err: ErrSessionCorrupted,
		info: ErrorInfo{
			Message: "The saved account session could not be read.",
			Action:  "Sign in again to recreate it.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Another syncstatus process is holding the session lock.",
			Action:  "Wait for it to finish, then try again.",
		},
	},
	{
		err: ErrNonInteractiveMode,
		info: ErrorInfo{
			Message: "Confirmation is required but no terminal is attached.",
			Action:  "Re-run with --force.",
		},
	},
	{
		err: ErrTerminalRequired,
		info: ErrorInfo{
			Message: "This command needs an interactive terminal.",
			Action:  "Use `syncstatus status` or `syncstatus sync` from scripts.",
		},
	},
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation canceled.",
		},
	},
}

//nolint:gochecknoglobals // Built once from errorInfoEntries
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map; wrapped errors fall back to errors.Is().
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
