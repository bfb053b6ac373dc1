package cli

import (
	"context"

	"github.com/mrz1836/syncstatus/internal/config"
)

type (
	configKey    struct{}
	interruptKey struct{}
)

// InterruptNotifier runs teardown hooks when the process is interrupted.
// signal.Handler satisfies it.
type InterruptNotifier interface {
	OnInterrupt(fn func())
}

// WithConfig returns a context carrying the loaded configuration.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the configuration loaded by the root command,
// or the defaults when none was stored.
func ConfigFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
			return cfg
		}
	}
	return config.DefaultConfig()
}

// WithInterruptNotifier attaches the process signal handler so commands
// can tear down screens before the context is canceled.
func WithInterruptNotifier(ctx context.Context, n InterruptNotifier) context.Context {
	return context.WithValue(ctx, interruptKey{}, n)
}

func interruptsFromContext(ctx context.Context) InterruptNotifier {
	if ctx == nil {
		return nil
	}
	n, _ := ctx.Value(interruptKey{}).(InterruptNotifier)
	return n
}
