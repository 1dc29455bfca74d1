package student

import (
	"context"
	"strings"
)

// VerificationState tracks the mobile-account verification sub-flow shown to
// a registered-but-unverified student.
type VerificationState int

const (
	// StateCodeNotSent - no code requested yet (or the student opted to
	// change the mobile number).
	StateCodeNotSent VerificationState = iota
	// StateCodeSent - a code is on its way; awaiting input.
	StateCodeSent
	// StateVerified - terminal; control returns to the main dashboard.
	StateVerified
)

const codeLength = 6

// Verification is the UI-facing state held outside the session store: which
// mobile number a code was requested for and what the student has typed so
// far. It is ephemeral and never persisted.
type Verification struct {
	session *Session

	state        VerificationState
	mobileNumber string
	code         string
}

func NewVerification(session *Session) *Verification {
	v := &Verification{session: session}
	if usr, ok := session.Current(); ok {
		v.mobileNumber = usr.MobileNumber
		if usr.IsMobileVerified {
			v.state = StateVerified
		}
	}
	return v
}

func (v *Verification) State() VerificationState { return v.state }

func (v *Verification) MobileNumber() string { return v.mobileNumber }

// Code returns the candidate code typed so far.
func (v *Verification) Code() string { return v.code }

// InputCode records the code as typed: non-digit characters are stripped and
// the length is capped at 6.
func (v *Verification) InputCode(typed string) {
	var b strings.Builder
	for _, r := range typed {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == codeLength {
			break
		}
	}
	v.code = b.String()
}

// CanConfirm reports whether submission is unblocked (exactly 6 digits typed).
func (v *Verification) CanConfirm() bool {
	return v.state == StateCodeSent && len(v.code) == codeLength
}

// SendCode requests a one-time code for the given mobile number.
func (v *Verification) SendCode(ctx context.Context, mobileNumber string) error {
	if err := v.session.SendVerificationCode(ctx, mobileNumber); err != nil {
		return err
	}
	v.mobileNumber = mobileNumber
	v.state = StateCodeSent
	return nil
}

// Confirm submits the typed code. The candidate code is discarded after the
// attempt regardless of outcome; a failed attempt stays in StateCodeSent so
// the student can retry or restart.
func (v *Verification) Confirm(ctx context.Context) error {
	if !v.CanConfirm() {
		return ErrInvalidCode
	}

	code := v.code
	v.code = ""
	if err := v.session.VerifyMobileAccount(ctx, v.mobileNumber, code); err != nil {
		return err
	}
	v.state = StateVerified
	return nil
}

// Restart returns to StateCodeNotSent so the student can change the mobile
// number. No-op once verified.
func (v *Verification) Restart() {
	if v.state == StateVerified {
		return
	}
	v.state = StateCodeNotSent
	v.code = ""
}
