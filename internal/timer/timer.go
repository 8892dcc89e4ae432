// Package timer runs named periodic callbacks, the way a DAW scripting host
// exposes startTimer/stopTimer to its controller scripts.
package timer

import (
	"sync"
	"time"
)

type entry struct {
	ticker *time.Ticker
	done   chan struct{}
	exited chan struct{}
}

// Service owns a set of named timers. Callbacks of one timer never overlap.
type Service struct {
	mu     sync.Mutex
	timers map[string]*entry
}

// NewService creates a timer service with no timers running
func NewService() *Service {
	return &Service{timers: make(map[string]*entry)}
}

// Start runs fn every period under name, replacing any timer already
// registered with that name
func (s *Service) Start(name string, period time.Duration, fn func()) {
	e := &entry{
		ticker: time.NewTicker(period),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	s.mu.Lock()
	old := s.timers[name]
	s.timers[name] = e
	s.mu.Unlock()

	if old != nil {
		old.halt()
	}

	go func() {
		defer close(e.exited)
		for {
			select {
			case <-e.done:
				return
			case <-e.ticker.C:
				select {
				case <-e.done:
					return
				default:
				}
				fn()
			}
		}
	}()
}

// Stop cancels the named timer and waits for an in-flight callback, so no
// callback of that timer runs after Stop returns. It must not be called from
// the timer's own callback. Stopping an unknown timer is a no-op.
func (s *Service) Stop(name string) {
	s.mu.Lock()
	e, ok := s.timers[name]
	delete(s.timers, name)
	s.mu.Unlock()

	if ok {
		e.halt()
	}
}

func (e *entry) halt() {
	e.ticker.Stop()
	close(e.done)
	<-e.exited
}

// Running reports whether a timer is registered under name
func (s *Service) Running(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[name]
	return ok
}

// Close stops every timer
func (s *Service) Close() {
	s.mu.Lock()
	names := make([]string, 0, len(s.timers))
	for name := range s.timers {
		names = append(names, name)
	}
	s.mu.Unlock()

	for _, name := range names {
		s.Stop(name)
	}
}
