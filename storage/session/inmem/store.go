// Package inmemstore holds session snapshots in memory; it backs tests and
// short-lived tooling where persistence across restarts is unwanted.
package inmemstore

import (
	"sync"

	"github.com/campuspay/campuspay/core"
)

type Store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

var _ core.SessionStore = (*Store)(nil)

func Open() *Store {
	return &Store{slots: make(map[string][]byte)}
}

func (s *Store) Load(slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.slots[slot]
	if !ok {
		return nil, core.ErrNoSession
	}
	out := make([]byte, len(snap))
	copy(out, snap)
	return out, nil
}

func (s *Store) Save(slot string, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make([]byte, len(snapshot))
	copy(snap, snapshot)
	s.slots[slot] = snap
	return nil
}

func (s *Store) Clear(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}
