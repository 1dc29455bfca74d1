// Package sqlxstore persists session snapshots in a single-row-per-slot
// Postgres table, for deployments where the portal state must survive the
// host (kiosk terminals sharing a database).
package sqlxstore

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/campuspay/campuspay/core"
)

// Schema is applied on Open; the slot table is deliberately schema-less
// about the snapshot itself (see core.SessionStore).
const Schema = `
CREATE TABLE IF NOT EXISTS session_slot (
	slot       text PRIMARY KEY,
	snapshot   jsonb NOT NULL,
	updated_at timestamptz NOT NULL
)`

type Store struct {
	db *sqlx.DB
}

var _ core.SessionStore = (*Store)(nil)

func Open(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to session database")
	}
	if _, err := db.Exec(Schema); err != nil {
		return nil, errors.Wrap(err, "ensuring session_slot table")
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(slot string) ([]byte, error) {
	var snapshot []byte
	err := s.db.Get(&snapshot, `SELECT snapshot FROM session_slot WHERE slot = $1`, slot)
	if err == sql.ErrNoRows {
		return nil, core.ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading session snapshot")
	}
	return snapshot, nil
}

func (s *Store) Save(slot string, snapshot []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO session_slot (slot, snapshot, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (slot) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = EXCLUDED.updated_at`,
		slot, snapshot, time.Now().UTC(),
	)
	return errors.Wrap(err, "saving session snapshot")
}

func (s *Store) Clear(slot string) error {
	_, err := s.db.Exec(`DELETE FROM session_slot WHERE slot = $1`, slot)
	return errors.Wrap(err, "clearing session snapshot")
}

func (s *Store) Close() error {
	return s.db.Close()
}
