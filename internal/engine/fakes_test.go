package engine

import (
	"context"
	"sync"

	"github.com/mrz1836/syncstatus/internal/domain"
)

type memOutcomeStore struct {
	mu      sync.Mutex
	outcome domain.SyncOutcome
	records int
	err     error
}

func (s *memOutcomeStore) Read() domain.SyncOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

func (s *memOutcomeStore) Record(_ context.Context, o domain.SyncOutcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records++
	if s.err != nil {
		return s.err
	}
	s.outcome = o
	return nil
}

type memSessionStore struct {
	mu      sync.Mutex
	session *domain.Session
	loadErr error
	saveErr error
	clears  int
}

func (s *memSessionStore) Load(context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.session == nil {
		return nil, nil
	}
	cp := *s.session
	return &cp, nil
}

func (s *memSessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *session
	s.session = &cp
	return nil
}

func (s *memSessionStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.session = nil
	s.loadErr = nil
	return nil
}

type eventLog[T any] struct {
	mu     sync.Mutex
	events []T
}

func (l *eventLog[T]) add(ev T) {
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
}

func (l *eventLog[T]) names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, ev := range l.events {
		out = append(out, domain.EventName(any(ev).(domain.Event)))
	}
	return out
}
