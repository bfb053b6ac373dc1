package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/syncstatus/internal/config"
)

func TestConfigFromContext(t *testing.T) {
	t.Parallel()

	t.Run("defaults without a stored config", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, config.DefaultConfig(), ConfigFromContext(context.Background()))
	})

	t.Run("stored config", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.UI.Locale = "de"
		assert.Same(t, cfg, ConfigFromContext(WithConfig(context.Background(), cfg)))
	})
}

func TestInterruptsFromContext(t *testing.T) {
	t.Parallel()

	assert.Nil(t, interruptsFromContext(context.Background()))

	n := &fakeInterrupts{}
	assert.Same(t, n, interruptsFromContext(WithInterruptNotifier(context.Background(), n)))
}
