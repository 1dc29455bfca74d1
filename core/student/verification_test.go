package student

import (
	"context"
	"testing"
)

func TestVerification_flow(t *testing.T) {
	s, _ := newTestSession(t)
	register(t, s)

	v := NewVerification(s)
	if v.State() != StateCodeNotSent {
		t.Fatalf("State() = %v, want %v", v.State(), StateCodeNotSent)
	}
	if v.MobileNumber() != "09170000000" {
		t.Errorf("MobileNumber() = %s, want the registered number", v.MobileNumber())
	}

	if err := v.SendCode(context.Background(), "09998887777"); err != nil {
		t.Fatalf("SendCode() failed: %v", err)
	}
	if v.State() != StateCodeSent {
		t.Fatalf("State() = %v, want %v", v.State(), StateCodeSent)
	}
	if v.MobileNumber() != "09998887777" {
		t.Errorf("SendCode() did not adopt the new number")
	}

	// confirmation is blocked until 6 digits are typed
	v.InputCode("123")
	if v.CanConfirm() {
		t.Error("CanConfirm() = true with a partial code")
	}
	if err := v.Confirm(context.Background()); err != ErrInvalidCode {
		t.Errorf("Confirm() error = %v, want %v", err, ErrInvalidCode)
	}

	v.InputCode(demoCode)
	if !v.CanConfirm() {
		t.Fatal("CanConfirm() = false with a complete code")
	}
	if err := v.Confirm(context.Background()); err != nil {
		t.Fatalf("Confirm() failed: %v", err)
	}
	if v.State() != StateVerified {
		t.Errorf("State() = %v, want %v", v.State(), StateVerified)
	}

	usr, _ := s.Current()
	if !usr.IsMobileVerified {
		t.Error("Confirm() did not verify the session identity")
	}
}

func TestVerification_failedAttempt(t *testing.T) {
	s, _ := newTestSession(t)
	register(t, s)

	v := NewVerification(s)
	if err := v.SendCode(context.Background(), "09170000000"); err != nil {
		t.Fatalf("SendCode() failed: %v", err)
	}

	v.InputCode("654321")
	if err := v.Confirm(context.Background()); err != ErrInvalidCode {
		t.Fatalf("Confirm() error = %v, want %v", err, ErrInvalidCode)
	}
	// a failed attempt stays on the code entry step with the code discarded
	if v.State() != StateCodeSent {
		t.Errorf("State() = %v, want %v", v.State(), StateCodeSent)
	}
	if v.Code() != "" {
		t.Errorf("Code() = %q, want empty after a failed attempt", v.Code())
	}

	// change number: back to square one
	v.Restart()
	if v.State() != StateCodeNotSent {
		t.Errorf("State() = %v, want %v", v.State(), StateCodeNotSent)
	}
}

func TestVerification_inputCode(t *testing.T) {
	v := &Verification{}

	tests := []struct {
		name  string
		typed string
		want  string
	}{
		{name: "digits pass through", typed: "123456", want: "123456"},
		{name: "non-digits stripped", typed: "12-34 56", want: "123456"},
		{name: "length capped at 6", typed: "1234567890", want: "123456"},
		{name: "letters dropped", typed: "abc123", want: "123"},
		{name: "empty", typed: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.InputCode(tt.typed)
			if v.Code() != tt.want {
				t.Errorf("Code() = %q, want %q", v.Code(), tt.want)
			}
		})
	}
}

func TestVerification_preVerified(t *testing.T) {
	s, _ := newTestSession(t)
	login(t, s) // demo identity is pre-verified

	v := NewVerification(s)
	if v.State() != StateVerified {
		t.Fatalf("State() = %v, want %v", v.State(), StateVerified)
	}

	// terminal: Restart is a no-op
	v.Restart()
	if v.State() != StateVerified {
		t.Error("Restart() left the verified state")
	}
}
