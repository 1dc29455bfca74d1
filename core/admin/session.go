package admin

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuspay/campuspay/core"
)

// SessionSlot is the persisted-session slot key for the admin actor type.
// Independent from the student slot: the two stores are never merged.
const SessionSlot = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("no administrator is logged in")
	ErrOperationInFlight  = errors.New("another operation is already in progress")
)

// Directory authenticates administrators against accounts provisioned
// out-of-band and resolves their role, department and permissions.
type Directory interface {
	Authenticate(ctx context.Context, email, password string) (Admin, error)
}

// Session holds the currently authenticated Admin, if any. Structurally it
// mirrors the student session minus the verification sub-flow.
type Session struct {
	directory Directory
	store     core.SessionStore
	logger    core.Logger

	mu      sync.Mutex
	current *Admin
	loading bool
}

func NewSession(directory Directory, store core.SessionStore, logger core.Logger) *Session {
	s := &Session{
		directory: directory,
		store:     store,
		logger:    logger,
	}
	s.restore()
	return s
}

func (s *Session) restore() {
	snap, err := s.store.Load(SessionSlot)
	if err != nil {
		if err != core.ErrNoSession && s.logger != nil {
			s.logger.Warn("loading persisted admin session", err)
		}
		return
	}
	var adm Admin
	if err := json.Unmarshal(snap, &adm); err != nil {
		if s.logger != nil {
			s.logger.Warn("decoding persisted admin session", err)
		}
		_ = s.store.Clear(SessionSlot)
		return
	}
	s.current = &adm
}

func (s *Session) Current() (Admin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Admin{}, false
	}
	return *s.current, true
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	adm, err := s.directory.Authenticate(ctx, core.CleanString(email, true /* lower */), password)
	if err != nil {
		return err
	}

	snap, err := json.Marshal(adm)
	if err != nil {
		return pkgerrors.Wrap(err, "encoding admin session")
	}
	if err := s.store.Save(SessionSlot, snap); err != nil {
		return pkgerrors.Wrap(err, "persisting admin session")
	}

	s.mu.Lock()
	s.current = &adm
	s.mu.Unlock()
	return nil
}

// Logout clears the current session and its persisted snapshot. Idempotent.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.store.Clear(SessionSlot); err != nil && s.logger != nil {
		s.logger.Warn("clearing persisted admin session", err)
	}
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return ErrOperationInFlight
	}
	s.loading = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// demo directory

type demoAccount struct {
	id         string
	pwdHash    []byte
	name       string
	role       string
	department string
}

type demoDirectory struct {
	latency  time.Duration
	accounts map[string]demoAccount
}

var _ Directory = (*demoDirectory)(nil)

// NewDemoDirectory returns a Directory resolving the fixed demo accounts
// after a simulated network delay.
func NewDemoDirectory(conf *core.Config) Directory {
	return &demoDirectory{
		latency: conf.Demo.Latency,
		accounts: map[string]demoAccount{
			"admin@university.edu.ph": {
				id:         "admin_123",
				pwdHash:    mustHash("admin123"),
				name:       "Maria Santos",
				role:       RoleSuperAdmin,
				department: "Finance Office",
			},
			"finance@university.edu.ph": {
				id:         "admin_124",
				pwdHash:    mustHash("finance123"),
				name:       "Ramon Bautista",
				role:       RoleFinanceOfficer,
				department: "Finance Office",
			},
		},
	}
}

func (d *demoDirectory) Authenticate(ctx context.Context, email, password string) (Admin, error) {
	if d.latency > 0 {
		t := time.NewTimer(d.latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return Admin{}, ctx.Err()
		}
	}

	acct, ok := d.accounts[email]
	if !ok {
		return Admin{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.pwdHash, []byte(password)); err != nil {
		return Admin{}, ErrInvalidCredentials
	}

	return Admin{
		ID:          acct.id,
		Email:       email,
		Name:        acct.name,
		Role:        acct.role,
		Department:  acct.department,
		Permissions: RolePermissions(acct.role),
	}, nil
}

func mustHash(pwd string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}
