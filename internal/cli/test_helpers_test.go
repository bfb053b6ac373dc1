package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/syncstatus/internal/config"
	"github.com/mrz1836/syncstatus/internal/constants"
)

// mockFormRunner is a formRunner that records calls and can mutate bound values.
type mockFormRunner struct {
	runErr error
	onRun  func()
	calls  int
}

func (m *mockFormRunner) Run() error {
	m.calls++
	if m.onRun != nil {
		m.onRun()
	}
	return m.runErr
}

// mockTerminalCheck swaps terminalCheck for the duration of the test.
// Tests using it must not run in parallel.
func mockTerminalCheck(t *testing.T, interactive bool) {
	t.Helper()
	orig := terminalCheck
	terminalCheck = func() bool { return interactive }
	t.Cleanup(func() { terminalCheck = orig })
}

// testConfig returns a memory-backed config with the session file in a
// temp directory and instant simulated syncs.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Store.Backend = constants.StoreBackendMemory
	cfg.Account.SessionPath = filepath.Join(t.TempDir(), "session.yaml")
	cfg.Sync.RunDuration = 0
	cfg.Sync.Schedule = "@every 1h"
	return cfg
}

// newTestServices opens services for testConfig.
func newTestServices(t *testing.T) *services {
	t.Helper()
	return newTestServicesFor(t, testConfig(t))
}

func newTestServicesFor(t *testing.T, cfg *config.Config) *services {
	t.Helper()
	svc, err := openServices(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

// signIn signs svc's account engine in.
func signIn(t *testing.T, svc *services, email, name string) {
	t.Helper()
	_, err := svc.accounts.Login(context.Background(), email, name)
	require.NoError(t, err)
}
