package student

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/campuspay/campuspay/core"
)

// SessionSlot is the persisted-session slot key for the student actor type.
const SessionSlot = "student"

var (
	ErrNotAuthenticated  = errors.New("no student is logged in")
	ErrOperationInFlight = errors.New("another operation is already in progress")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

// Session holds the currently authenticated Student, if any.
//
// Lifecycle: created on successful login or registration, restored from the
// SessionStore on construction, destroyed on Logout (which also clears the
// persisted slot). Every mutating success re-persists the full identity
// snapshot. At most one operation may be in flight at a time; concurrent
// submissions are rejected with ErrOperationInFlight and the in-flight flag
// is always cleared on completion, success or failure.
type Session struct {
	provider IdentityProvider
	store    core.SessionStore
	logger   core.Logger

	mu      sync.Mutex
	current *Student
	loading bool
}

func NewSession(provider IdentityProvider, store core.SessionStore, logger core.Logger) *Session {
	s := &Session{
		provider: provider,
		store:    store,
		logger:   logger,
	}
	s.restore()
	return s
}

// restore loads a previously persisted identity, if any. Any failure
// (absent slot, tampered or undecodable snapshot) fails safe to anonymous.
func (s *Session) restore() {
	snap, err := s.store.Load(SessionSlot)
	if err != nil {
		if err != core.ErrNoSession {
			s.warn("loading persisted student session", err)
		}
		return
	}
	var usr Student
	if err := json.Unmarshal(snap, &usr); err != nil {
		s.warn("decoding persisted student session", err)
		_ = s.store.Clear(SessionSlot)
		return
	}
	s.current = &usr
}

// Current returns the authenticated Student, if any.
func (s *Session) Current() (Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Student{}, false
	}
	return *s.current, true
}

// Loading reports whether an operation is in flight; the UI shell disables
// duplicate submission while it is true.
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

	usr, err := s.provider.Authenticate(ctx, core.CleanString(email, true /* lower */), password)
	if err != nil {
		return err
	}
	return s.setCurrent(usr)
}

func (s *Session) Register(ctx context.Context, ns NewStudent) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	// the UI shell validates before calling; re-validate in case it did not
	if err := ns.Validate(); err != nil {
		return err
	}

	usr, err := s.provider.Register(ctx, ns)
	if err != nil {
		return err
	}
	return s.setCurrent(usr)
}

// Logout clears the current session and its persisted snapshot.
// Idempotent; logging out an anonymous session is a no-op.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.store.Clear(SessionSlot); err != nil {
		s.warn("clearing persisted student session", err)
	}
}

// SendVerificationCode dispatches a one-time code to the given mobile
// account number.
func (s *Session) SendVerificationCode(ctx context.Context, mobileNumber string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if _, ok := s.Current(); !ok {
		return ErrNotAuthenticated
	}
	if err := core.Validate.Var(mobileNumber, "required,phmobile"); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "mobile_number", Error: "a valid 11-digit mobile number starting with 09 is required"})
	}
	return s.provider.SendVerificationCode(ctx, mobileNumber)
}

// VerifyMobileAccount confirms the one-time code. On success the current
// identity is marked verified and re-persisted; on failure it is unchanged.
// Verification is monotonic: no operation short of Logout unsets it.
func (s *Session) VerifyMobileAccount(ctx context.Context, mobileNumber, code string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	usr, ok := s.Current()
	if !ok {
		return ErrNotAuthenticated
	}
	// the verification sub-flow blocks malformed codes client-side;
	// still reject them here in case that contract is bypassed
	if err := core.Validate.Var(code, "required,otpcode"); err != nil {
		return ErrInvalidCode
	}

	updated, err := s.provider.VerifyMobileAccount(ctx, usr, mobileNumber, code)
	if err != nil {
		return err
	}
	return s.setCurrent(updated)
}

// Debit subtracts amount from the current balance and re-persists.
func (s *Session) Debit(amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNotAuthenticated
	}
	if amount <= 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "amount", Error: "amount must be positive"})
	}
	if s.current.Balance < amount {
		return ErrInsufficientFunds
	}
	usr := *s.current
	usr.Balance -= amount
	return s.setCurrentLocked(usr)
}

// Credit adds amount to the current balance and re-persists.
func (s *Session) Credit(amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNotAuthenticated
	}
	if amount <= 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "amount", Error: "amount must be positive"})
	}
	usr := *s.current
	usr.Balance += amount
	return s.setCurrentLocked(usr)
}

func (s *Session) setCurrent(usr Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCurrentLocked(usr)
}

func (s *Session) setCurrentLocked(usr Student) error {
	snap, err := json.Marshal(usr)
	if err != nil {
		return pkgerrors.Wrap(err, "encoding student session")
	}
	if err := s.store.Save(SessionSlot, snap); err != nil {
		return pkgerrors.Wrap(err, "persisting student session")
	}
	s.current = &usr
	return nil
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

func (s *Session) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, err)
	}
}
