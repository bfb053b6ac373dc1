// Package engine provides the local account and sync engines that feed the
// account screen.
//
// They are deliberately small: SyncManager runs a Syncer on demand or on a
// cron schedule and records the outcome; AccountManager keeps one session
// in a SessionStore. Both publish events through observer registries.
//
// Import rules:
//   - CAN import: internal/clock, internal/ctxutil, internal/domain,
//     internal/errors, internal/logging, internal/observer, internal/lifecycle
//   - MUST NOT import: internal/screen, internal/tui, internal/cli
package engine
