package student

import (
	"context"
	"testing"

	"github.com/campuspay/campuspay/core"
	inmemstore "github.com/campuspay/campuspay/storage/session/inmem"
)

const (
	demoCode    = "123456"
	seedBalance = int64(2450)
)

func newTestConfig() *core.Config {
	return &core.Config{
		AppName: "CampusPay",
		Demo: core.DemoConfig{
			Latency:       0,
			EmailDomain:   "university.edu.ph",
			ReferenceCode: demoCode,
			SeedBalance:   seedBalance,
		},
	}
}

func newTestSession(t *testing.T) (*Session, core.SessionStore) {
	t.Helper()
	store := inmemstore.Open()
	session := NewSession(NewDemoProvider(newTestConfig(), nil, nil), store, nil)
	return session, store
}

func login(t *testing.T, s *Session) Student {
	t.Helper()
	if err := s.Login(context.Background(), demoEmail, demoPassword); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	usr, ok := s.Current()
	if !ok {
		t.Fatal("Login() left the session anonymous")
	}
	return usr
}

func register(t *testing.T, s *Session) Student {
	t.Helper()
	ns := NewStudent{
		Name:            "Test Student",
		Email:           "test.student@university.edu.ph",
		Password:        "password123",
		PasswordConfirm: "password123",
		StudentID:       "2024-09999",
		MobileNumber:    "09170000000",
	}
	if err := s.Register(context.Background(), ns); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	usr, ok := s.Current()
	if !ok {
		t.Fatal("Register() left the session anonymous")
	}
	return usr
}

func TestSession_Login(t *testing.T) {
	s, store := newTestSession(t)

	if _, ok := s.Current(); ok {
		t.Fatal("fresh session is not anonymous")
	}

	// wrong credentials leave the session anonymous
	if err := s.Login(context.Background(), demoEmail, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
	}
	if err := s.Login(context.Background(), "nobody@university.edu.ph", demoPassword); err != ErrInvalidCredentials {
		t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, ok := s.Current(); ok {
		t.Error("failed login authenticated the session")
	}

	// email is case-insensitive and trimmed
	if err := s.Login(context.Background(), "  Juan.DelaCruz@University.edu.ph ", demoPassword); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	usr, _ := s.Current()
	if !usr.IsMobileVerified {
		t.Error("seeded demo identity must be pre-verified")
	}
	if usr.Balance != seedBalance {
		t.Errorf("Balance = %d, want %d", usr.Balance, seedBalance)
	}
	if _, err := store.Load(SessionSlot); err != nil {
		t.Errorf("login did not persist the session: %v", err)
	}
}

func TestSession_Register(t *testing.T) {
	s, _ := newTestSession(t)

	usr := register(t, s)
	if usr.IsMobileVerified {
		t.Error("fresh registration must start unverified")
	}
	if usr.Balance != 0 {
		t.Errorf("Balance = %d, want 0", usr.Balance)
	}
	if usr.ID == "" {
		t.Error("registration did not assign an ID")
	}
}

func TestSession_Register_conflictAndValidation(t *testing.T) {
	s, _ := newTestSession(t)

	ns := NewStudent{
		Name:            "Test Student",
		Email:           takenEmail,
		Password:        "password123",
		PasswordConfirm: "password123",
		StudentID:       "2024-09999",
		MobileNumber:    "09170000000",
	}
	if err := s.Register(context.Background(), ns); err != ErrEmailExists {
		t.Errorf("Register() error = %v, want %v", err, ErrEmailExists)
	}
	if _, ok := s.Current(); ok {
		t.Error("conflicting registration authenticated the session")
	}

	// non-institutional email
	ns.Email = "test@gmail.com"
	if err := s.Register(context.Background(), ns); err == nil {
		t.Error("Register() accepted a non-institutional email")
	}

	// password mismatch
	ns.Email = "test.student@university.edu.ph"
	ns.PasswordConfirm = "different123"
	if err := s.Register(context.Background(), ns); err == nil {
		t.Error("Register() accepted mismatched passwords")
	}
}

func TestSession_Logout(t *testing.T) {
	s, store := newTestSession(t)
	login(t, s)

	s.Logout()
	if _, ok := s.Current(); ok {
		t.Error("Logout() left the session authenticated")
	}
	if _, err := store.Load(SessionSlot); err != core.ErrNoSession {
		t.Errorf("Logout() did not clear the persisted slot: %v", err)
	}

	// idempotent
	s.Logout()
	if _, ok := s.Current(); ok {
		t.Error("repeated Logout() resurrected the session")
	}
}

func TestSession_restore(t *testing.T) {
	store := inmemstore.Open()
	provider := NewDemoProvider(newTestConfig(), nil, nil)

	s1 := NewSession(provider, store, nil)
	usr := login(t, s1)

	// a new session over the same store restores the identity
	s2 := NewSession(provider, store, nil)
	restored, ok := s2.Current()
	if !ok {
		t.Fatal("restore failed: session is anonymous")
	}
	if restored != usr {
		t.Errorf("restored identity = %+v, want %+v", restored, usr)
	}
}

func TestSession_restore_corruptSnapshot(t *testing.T) {
	store := inmemstore.Open()
	if err := store.Save(SessionSlot, []byte("{not json")); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	s := NewSession(NewDemoProvider(newTestConfig(), nil, nil), store, nil)
	if _, ok := s.Current(); ok {
		t.Error("corrupt snapshot must fail safe to anonymous")
	}
	// the poisoned slot is cleared so the next restore is clean
	if _, err := store.Load(SessionSlot); err != core.ErrNoSession {
		t.Errorf("corrupt slot was not cleared: %v", err)
	}
}

func TestSession_VerifyMobileAccount(t *testing.T) {
	s, _ := newTestSession(t)

	// unauthenticated
	if err := s.VerifyMobileAccount(context.Background(), "09170000000", demoCode); err != ErrNotAuthenticated {
		t.Errorf("VerifyMobileAccount() error = %v, want %v", err, ErrNotAuthenticated)
	}

	register(t, s)

	// malformed code never reaches the backend
	if err := s.VerifyMobileAccount(context.Background(), "09170000000", "12ab56"); err != ErrInvalidCode {
		t.Errorf("VerifyMobileAccount() error = %v, want %v", err, ErrInvalidCode)
	}

	// wrong code leaves the identity untouched
	if err := s.VerifyMobileAccount(context.Background(), "09170000000", "654321"); err != ErrInvalidCode {
		t.Errorf("VerifyMobileAccount() error = %v, want %v", err, ErrInvalidCode)
	}
	usr, _ := s.Current()
	if usr.IsMobileVerified {
		t.Fatal("failed verification flipped the verified flag")
	}

	if err := s.VerifyMobileAccount(context.Background(), "09998887777", demoCode); err != nil {
		t.Fatalf("VerifyMobileAccount() failed: %v", err)
	}
	usr, _ = s.Current()
	if !usr.IsMobileVerified {
		t.Error("successful verification did not flip the verified flag")
	}
	if usr.MobileNumber != "09998887777" {
		t.Errorf("MobileNumber = %s, want 09998887777", usr.MobileNumber)
	}
	if usr.Balance != seedBalance {
		t.Errorf("Balance = %d, want %d", usr.Balance, seedBalance)
	}

	// monotonic: another failed attempt cannot unset it
	_ = s.VerifyMobileAccount(context.Background(), "09998887777", "654321")
	usr, _ = s.Current()
	if !usr.IsMobileVerified {
		t.Error("verification is not monotonic")
	}
}

func TestSession_SendVerificationCode(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.SendVerificationCode(context.Background(), "09170000000"); err != ErrNotAuthenticated {
		t.Errorf("SendVerificationCode() error = %v, want %v", err, ErrNotAuthenticated)
	}

	register(t, s)

	if err := s.SendVerificationCode(context.Background(), "0917"); err == nil {
		t.Error("SendVerificationCode() accepted a malformed mobile number")
	}
	if err := s.SendVerificationCode(context.Background(), "09170000000"); err != nil {
		t.Errorf("SendVerificationCode() failed: %v", err)
	}
}

func TestSession_DebitCredit(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.Debit(100); err != ErrNotAuthenticated {
		t.Errorf("Debit() error = %v, want %v", err, ErrNotAuthenticated)
	}

	login(t, s)

	if err := s.Debit(seedBalance + 1); err != ErrInsufficientFunds {
		t.Errorf("Debit() error = %v, want %v", err, ErrInsufficientFunds)
	}
	if err := s.Debit(-5); err == nil {
		t.Error("Debit() accepted a non-positive amount")
	}

	if err := s.Debit(450); err != nil {
		t.Fatalf("Debit() failed: %v", err)
	}
	if err := s.Credit(1000); err != nil {
		t.Fatalf("Credit() failed: %v", err)
	}
	usr, _ := s.Current()
	if want := seedBalance - 450 + 1000; usr.Balance != want {
		t.Errorf("Balance = %d, want %d", usr.Balance, want)
	}
}

// blockingProvider parks Authenticate until released.
type blockingProvider struct {
	IdentityProvider
	release chan struct{}
	entered chan struct{}
}

func (p *blockingProvider) Authenticate(ctx context.Context, email, password string) (Student, error) {
	p.entered <- struct{}{}
	<-p.release
	return p.IdentityProvider.Authenticate(ctx, email, password)
}

func TestSession_operationInFlight(t *testing.T) {
	provider := &blockingProvider{
		IdentityProvider: NewDemoProvider(newTestConfig(), nil, nil),
		release:          make(chan struct{}),
		entered:          make(chan struct{}),
	}
	s := NewSession(provider, inmemstore.Open(), nil)

	done := make(chan error, 1)
	go func() {
		done <- s.Login(context.Background(), demoEmail, demoPassword)
	}()
	<-provider.entered

	if !s.Loading() {
		t.Error("Loading() = false while an operation is in flight")
	}
	if err := s.Login(context.Background(), demoEmail, demoPassword); err != ErrOperationInFlight {
		t.Errorf("concurrent Login() error = %v, want %v", err, ErrOperationInFlight)
	}

	close(provider.release)
	if err := <-done; err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	// the in-flight flag is always cleared
	if s.Loading() {
		t.Error("Loading() = true after the operation completed")
	}
	if err := s.SendVerificationCode(context.Background(), "09170000000"); err != nil {
		t.Errorf("follow-up operation failed: %v", err)
	}
}
