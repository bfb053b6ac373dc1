package constants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncDefaults(t *testing.T) {
	t.Run("run duration fits inside the timeout", func(t *testing.T) {
		assert.Less(t, DefaultSyncRunDuration, DefaultSyncTimeout)
	})

	t.Run("schedule uses a cron descriptor", func(t *testing.T) {
		assert.Equal(t, "@every 15m", DefaultSyncSchedule)
	})
}

func TestUIDefaults(t *testing.T) {
	t.Run("refresh interval keeps minute resolution fresh", func(t *testing.T) {
		assert.LessOrEqual(t, DefaultRefreshInterval, time.Minute)
	})

	t.Run("locale is a bare language tag", func(t *testing.T) {
		assert.Equal(t, "en", DefaultLocale)
	})
}

func TestStoreBackends(t *testing.T) {
	backends := []string{StoreBackendBolt, StoreBackendRedis, StoreBackendMemory}
	seen := make(map[string]bool, len(backends))
	for _, b := range backends {
		assert.NotEmpty(t, b)
		assert.False(t, seen[b], "duplicate backend %q", b)
		seen[b] = true
	}
}
