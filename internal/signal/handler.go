// Package signal turns SIGINT/SIGTERM into context cancellation for
// syncstatus commands and runs teardown hooks registered by the command
// (screen deactivation, scheduler stop) exactly once.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler cancels its context on the first SIGINT or SIGTERM.
type Handler struct {
	ctx         context.Context //nolint:containedctx // the handler owns this context's lifetime
	cancel      context.CancelFunc
	interrupted chan struct{}
	done        chan struct{}
	sigChan     chan os.Signal

	mu       sync.Mutex
	hooks    []func()
	received os.Signal

	once     sync.Once
	stopOnce sync.Once
}

// NewHandler starts listening for SIGINT and SIGTERM.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	h.OnInterrupt(func() { ctrl.Deactivate() })
//	ctx = h.Context()
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		sigChan:     make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context is canceled when a signal arrives or Stop is called.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted is closed once a signal has been handled.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Signal returns the signal that interrupted the command, or nil.
func (h *Handler) Signal() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// OnInterrupt registers fn to run on the listener goroutine when the first
// signal arrives, after the context is canceled. Hooks run in registration
// order. A hook registered after the interrupt runs immediately.
func (h *Handler) OnInterrupt(fn func()) {
	h.mu.Lock()
	select {
	case <-h.interrupted:
		h.mu.Unlock()
		fn()
		return
	default:
	}
	h.hooks = append(h.hooks, fn)
	h.mu.Unlock()
}

// Stop detaches from the OS signal machinery and cancels the context.
// Registered hooks do not run on Stop.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
	})
}

func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.cancel()

		h.mu.Lock()
		h.received = sig
		hooks := h.hooks
		h.hooks = nil
		close(h.interrupted)
		h.mu.Unlock()

		for _, fn := range hooks {
			fn()
		}
	})
}

func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			// Only the first signal has an effect; later ones are drained.
			h.handleSignal(sig)
		}
	}
}
