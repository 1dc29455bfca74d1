package testutil

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/campuspay/campuspay/core"
	"github.com/campuspay/campuspay/core/student"
)

// Demo credentials resolved by the simulated backend.
const (
	DemoEmail    = "juan.delacruz@university.edu.ph"
	DemoPassword = "password123"
	DemoCode     = "123456"
	TakenEmail   = "existing@university.edu.ph"
)

// NewConfig returns a Config suitable for tests: no simulated latency, fixed
// demo dataset.
func NewConfig() *core.Config {
	return &core.Config{
		Env:              "TEST",
		Debug:            false,
		TestMode:         true,
		Build:            "test",
		AppName:          "CampusPay",
		SecretKey:        "test-secret-key",
		DefaultFromEmail: mail.Address{Name: "CampusPay", Address: "noreply@campuspay.localhost"},
		Server: core.ServerConfig{
			Host:            "localhost",
			Addr:            ":0",
			ShutdownTimeout: 5 * time.Second,
		},
		Demo: core.DemoConfig{
			Latency:       0,
			EmailDomain:   "university.edu.ph",
			ReferenceCode: DemoCode,
			SeedBalance:   2450,
		},
	}
}

// NopLogger discards everything; it keeps test output quiet.
type NopLogger struct{}

var _ core.Logger = (*NopLogger)(nil)

func (NopLogger) Enable(bool)                  {}
func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

// LoginDemoStudent logs the seeded demo student into the session.
func LoginDemoStudent(t *testing.T, session *student.Session) student.Student {
	t.Helper()
	if err := session.Login(context.Background(), DemoEmail, DemoPassword); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	usr, ok := session.Current()
	if !ok {
		t.Fatal("Login() left the session anonymous")
	}
	return usr
}

// RegisterStudent registers a fresh (unverified) student into the session.
func RegisterStudent(t *testing.T, session *student.Session, email string) student.Student {
	t.Helper()
	ns := student.NewStudent{
		Name:            "Test Student",
		Email:           email,
		Password:        "password123",
		PasswordConfirm: "password123",
		StudentID:       "2024-09999",
		MobileNumber:    "09170000000",
	}
	if err := session.Register(context.Background(), ns); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	usr, ok := session.Current()
	if !ok {
		t.Fatal("Register() left the session anonymous")
	}
	return usr
}
