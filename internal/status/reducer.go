package status

import "github.com/mrz1836/syncstatus/internal/domain"

// SyncLabel is what the "sync now" row currently says.
type SyncLabel int

// Sync row labels.
const (
	Idle SyncLabel = iota
	Syncing
)

// String returns the label name.
func (l SyncLabel) String() string {
	if l == Syncing {
		return "syncing"
	}
	return "idle"
}

// DisplayState is everything the account screen renders.
// SyncLabel == Syncing implies SyncEnabled == false.
type DisplayState struct {
	SyncLabel   SyncLabel `json:"sync_label"`
	SyncEnabled bool      `json:"sync_enabled"`
	Summary     string    `json:"summary"`
}

// EffectKind enumerates side effects requested by Reduce.
type EffectKind int

// Effects the controller must perform.
const (
	// EffectAnnounce asks the renderer to announce Effect.Text.
	EffectAnnounce EffectKind = iota + 1

	// EffectExit asks the controller to leave the screen.
	EffectExit
)

// Effect is a side effect produced by a transition.
type Effect struct {
	Kind EffectKind
	Text string
}

// Transition is the result of folding one event into a DisplayState.
type Transition struct {
	State   DisplayState
	Effects []Effect
}

// Exits reports whether the transition asks to leave the screen.
func (t Transition) Exits() bool {
	for _, e := range t.Effects {
		if e.Kind == EffectExit {
			return true
		}
	}
	return false
}

// Initial computes the state shown when the screen opens.
func Initial(running bool, outcome domain.SyncOutcome, f Summarizer) DisplayState {
	summary := f.Summary(outcome)
	if running {
		return DisplayState{SyncLabel: Syncing, SyncEnabled: false, Summary: summary}
	}
	return DisplayState{SyncLabel: Idle, SyncEnabled: true, Summary: summary}
}

// Reduce folds ev into state. outcome is the last stored sync outcome; its
// Failed flag is overridden by the event (SyncIdle succeeded, SyncError
// failed). Account events never change the state, so any interleaving of
// the two streams ends in the state the sync stream alone produces.
func Reduce(state DisplayState, ev domain.Event, outcome domain.SyncOutcome, f Summarizer) Transition {
	switch ev.(type) {
	case domain.SyncStarted:
		return Transition{
			State: DisplayState{SyncLabel: Syncing, SyncEnabled: false, Summary: state.Summary},
			Effects: []Effect{
				{Kind: EffectAnnounce, Text: f.SyncingLabel()},
			},
		}

	case domain.SyncIdle:
		return Transition{State: DisplayState{
			SyncLabel:   Idle,
			SyncEnabled: true,
			Summary:     f.Summary(outcome.WithFailed(false)),
		}}

	case domain.SyncError:
		return Transition{State: DisplayState{
			SyncLabel:   Idle,
			SyncEnabled: true,
			Summary:     f.Summary(outcome.WithFailed(true)),
		}}

	case domain.AuthProblem, domain.LoggedOut:
		return Transition{State: state, Effects: []Effect{{Kind: EffectExit}}}

	default:
		// Authenticated, ProfileUpdated and AccountError carry nothing this
		// screen shows.
		return Transition{State: state}
	}
}
