package domain

// Event is any event delivered to the account screen.
// The set of implementations is closed; use a type switch.
type Event interface {
	isEvent()
}

// AccountEvent is emitted by the account engine.
type AccountEvent interface {
	Event
	isAccountEvent()
}

// SyncEvent is emitted by the sync engine.
type SyncEvent interface {
	Event
	isSyncEvent()
}

// Authenticated is emitted after a successful sign-in.
type Authenticated struct {
	Account Account
}

// AuthProblem is emitted when the session can no longer be used and the
// user must sign in again.
type AuthProblem struct{}

// LoggedOut is emitted after the session was cleared.
type LoggedOut struct{}

// ProfileUpdated is emitted when profile data changed.
type ProfileUpdated struct {
	Profile Profile
}

// AccountError is emitted when the account engine hit an error it could
// not surface otherwise.
type AccountError struct {
	Cause error
}

// SyncStarted is emitted when a sync run begins.
type SyncStarted struct{}

// SyncIdle is emitted when a sync run finishes successfully.
type SyncIdle struct{}

// SyncError is emitted when a sync run fails.
type SyncError struct {
	Cause error
}

func (Authenticated) isEvent()  {}
func (AuthProblem) isEvent()    {}
func (LoggedOut) isEvent()      {}
func (ProfileUpdated) isEvent() {}
func (AccountError) isEvent()   {}
func (SyncStarted) isEvent()    {}
func (SyncIdle) isEvent()       {}
func (SyncError) isEvent()      {}

func (Authenticated) isAccountEvent()  {}
func (AuthProblem) isAccountEvent()    {}
func (LoggedOut) isAccountEvent()      {}
func (ProfileUpdated) isAccountEvent() {}
func (AccountError) isAccountEvent()   {}

func (SyncStarted) isSyncEvent() {}
func (SyncIdle) isSyncEvent()    {}
func (SyncError) isSyncEvent()   {}

// EventName returns a short snake_case name for logging.
func EventName(ev Event) string {
	switch ev.(type) {
	case Authenticated:
		return "authenticated"
	case AuthProblem:
		return "auth_problem"
	case LoggedOut:
		return "logged_out"
	case ProfileUpdated:
		return "profile_updated"
	case AccountError:
		return "account_error"
	case SyncStarted:
		return "sync_started"
	case SyncIdle:
		return "sync_idle"
	case SyncError:
		return "sync_error"
	default:
		return "unknown"
	}
}
