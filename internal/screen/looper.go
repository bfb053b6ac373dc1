package screen

import "sync"

// Looper is a Poster backed by one dedicated goroutine. Posted funcs run in
// FIFO order; the queue is unbounded so engines never block on the UI.
type Looper struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
}

// NewLooper starts the loop goroutine. Call Close to stop it.
func NewLooper() *Looper {
	l := &Looper{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)
	go l.run()
	return l
}

// Post implements Poster.
func (l *Looper) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
}

// Drain blocks until everything posted before the call has run. It returns
// immediately once the looper is closed.
func (l *Looper) Drain() {
	ran := make(chan struct{})
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, func() { close(ran) })
	l.cond.Signal()
	l.mu.Unlock()

	select {
	case <-ran:
	case <-l.done:
	}
}

// Close stops the loop after the func currently running returns. Pending
// funcs are discarded. Close is idempotent and waits for the loop to exit.
func (l *Looper) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		l.queue = nil
		l.cond.Broadcast()
	}
	l.mu.Unlock()
	<-l.done
}

// Done is closed when the loop has exited.
func (l *Looper) Done() <-chan struct{} {
	return l.done
}

func (l *Looper) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if l.closed {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}
