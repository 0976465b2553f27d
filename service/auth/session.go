// Package authsvc exposes the backend's auth state through an explicit
// subscription handle instead of implicit global callbacks.
package authsvc

import (
	"sync"

	"bookshare/store"
)

type Session struct {
	mu   sync.Mutex
	last store.AuthState
	subs map[int]func(store.AuthState)
	next int
	stop func()
}

func NewSession(a store.Auth) *Session {
	s := &Session{
		last: store.AuthState{IsLoading: true},
		subs: make(map[int]func(store.AuthState)),
	}
	s.stop = a.OnAuthStateChanged(s.broadcast)
	return s
}

// Delivery happens under the lock so an unsubscribe that has returned is
// a hard cut-off. Callbacks must not re-enter the session.
func (s *Session) broadcast(st store.AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = st
	for _, fn := range s.subs {
		fn(st)
	}
}

// Subscribe registers fn, replays the latest snapshot to it immediately
// and returns its teardown. After the teardown returns, fn receives no
// further snapshots.
func (s *Session) Subscribe(fn func(store.AuthState)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	cur := s.last
	s.mu.Unlock()

	fn(cur)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Current returns the latest snapshot without subscribing.
func (s *Session) Current() store.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Close tears down the upstream subscription.
func (s *Session) Close() {
	s.stop()
}
