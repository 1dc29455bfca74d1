// Package filestore persists session snapshots as one signed file per slot.
// The snapshot is wrapped in an HMAC-signed JWT so a tampered, truncated or
// foreign file fails signature verification and reads back as "no session"
// instead of corrupting state.
package filestore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/campuspay/campuspay/core"
)

type snapshotClaims struct {
	jwt.StandardClaims
	Snapshot json.RawMessage `json:"snap"`
}

type Store struct {
	dir    string
	issuer string
	key    []byte
}

var _ core.SessionStore = (*Store)(nil)

func Open(conf *core.Config) (*Store, error) {
	if err := os.MkdirAll(conf.Session.Dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating session dir")
	}
	return &Store{
		dir:    conf.Session.Dir,
		issuer: conf.AppName,
		key:    []byte(conf.SecretKey),
	}, nil
}

func (s *Store) Load(slot string) ([]byte, error) {
	raw, err := ioutil.ReadFile(s.path(slot))
	if err != nil {
		// absent and unreadable both fail safe to anonymous
		return nil, core.ErrNoSession
	}

	claims := new(snapshotClaims)
	token, err := jwt.ParseWithClaims(string(raw), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !token.Valid || claims.Subject != slot {
		return nil, core.ErrNoSession
	}
	return claims.Snapshot, nil
}

func (s *Store) Save(slot string, snapshot []byte) error {
	claims := &snapshotClaims{
		StandardClaims: jwt.StandardClaims{
			Issuer:  s.issuer,
			Subject: slot,
		},
		Snapshot: snapshot,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return errors.Wrap(err, "signing session snapshot")
	}
	if err := ioutil.WriteFile(s.path(slot), []byte(signed), 0o600); err != nil {
		return errors.Wrap(err, "writing session snapshot")
	}
	return nil
}

func (s *Store) Clear(slot string) error {
	if err := os.Remove(s.path(slot)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session snapshot")
	}
	return nil
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+".session")
}
