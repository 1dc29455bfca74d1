package core

import "errors"

// ErrNoSession is returned by SessionStore.Load when no snapshot exists for
// a slot, or when the persisted snapshot cannot be trusted or decoded.
// Callers must treat it as "anonymous", never as a fatal condition.
var ErrNoSession = errors.New("no persisted session")

// SessionStore persists the identity snapshot of one actor type per slot.
// It is a single-writer, single-reader key-value slot: the full snapshot is
// written verbatim on every mutating success and removed entirely on logout.
type SessionStore interface {
	Load(slot string) ([]byte, error)
	Save(slot string, snapshot []byte) error
	// Clear removes the slot; clearing an absent slot is not an error.
	Clear(slot string) error
}
