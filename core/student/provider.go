package student

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuspay/campuspay/core"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("a student with this email already exists")
	ErrInvalidCode        = errors.New("invalid verification code")
)

// IdentityProvider performs the asynchronous backend calls behind the
// session store: a production client can replace the demo implementation
// without touching the state-machine logic.
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (Student, error)
	Register(ctx context.Context, ns NewStudent) (Student, error)
	SendVerificationCode(ctx context.Context, mobileNumber string) error
	// VerifyMobileAccount confirms control of the mobile account and returns
	// the updated identity. The current identity is never mutated on failure.
	VerifyMobileAccount(ctx context.Context, current Student, mobileNumber, code string) (Student, error)
}

// demo dataset; see original portal seed data
const (
	demoEmail     = "juan.delacruz@university.edu.ph"
	demoPassword  = "password123"
	demoName      = "Juan Dela Cruz"
	demoStudentID = "2024-00123"
	demoMobile    = "09171234567"

	// registration attempts with this email simulate a uniqueness conflict
	takenEmail = "existing@university.edu.ph"
)

type demoProvider struct {
	latency       time.Duration
	referenceCode string
	seedBalance   int64

	demoPwdHash []byte

	smsSvc  core.SMSService
	mailSvc core.EmailService
}

var _ IdentityProvider = (*demoProvider)(nil)

// NewDemoProvider returns an IdentityProvider that simulates the backend:
// a fixed artificial delay stands in for network latency and every call
// eventually resolves against the demo dataset.
func NewDemoProvider(conf *core.Config, smsSvc core.SMSService, mailSvc core.EmailService) IdentityProvider {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)
	if err != nil {
		panic(err) // cannot happen with a static input
	}
	return &demoProvider{
		latency:       conf.Demo.Latency,
		referenceCode: conf.Demo.ReferenceCode,
		seedBalance:   conf.Demo.SeedBalance,
		demoPwdHash:   hash,
		smsSvc:        smsSvc,
		mailSvc:       mailSvc,
	}
}

func (p *demoProvider) Authenticate(ctx context.Context, email, password string) (Student, error) {
	if err := p.simulateCall(ctx); err != nil {
		return Student{}, err
	}

	email = core.CleanString(email, true /* lower */)
	if email != demoEmail {
		return Student{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(p.demoPwdHash, []byte(password)); err != nil {
		return Student{}, ErrInvalidCredentials
	}

	// the seeded identity is pre-verified and funded
	return Student{
		ID:               "user_123",
		Email:            email,
		Name:             demoName,
		StudentID:        demoStudentID,
		MobileNumber:     demoMobile,
		IsMobileVerified: true,
		IsEmailVerified:  true,
		Balance:          p.seedBalance,
	}, nil
}

func (p *demoProvider) Register(ctx context.Context, ns NewStudent) (Student, error) {
	if err := p.simulateCall(ctx); err != nil {
		return Student{}, err
	}

	if ns.Email == takenEmail {
		return Student{}, ErrEmailExists
	}

	st := Student{
		ID:           "user_" + uuid.New().String(),
		Email:        ns.Email,
		Name:         ns.Name,
		StudentID:    ns.StudentID,
		MobileNumber: ns.MobileNumber,
	}

	if p.mailSvc != nil {
		p.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: st.Name, Address: st.Email}},
			Subject: "Welcome to CampusPay",
			BodyStr: fmt.Sprintf(
				"Hi %s,\n\nYour CampusPay account has been created. "+
					"Verify your linked mobile account to activate your wallet.", st.Name),
		})
	}
	return st, nil
}

func (p *demoProvider) SendVerificationCode(ctx context.Context, mobileNumber string) error {
	if err := p.simulateCall(ctx); err != nil {
		return err
	}

	if p.smsSvc != nil {
		p.smsSvc.SendMessages(&core.SMSMessage{
			To:   mobileNumber,
			Body: "Your CampusPay verification code is " + p.referenceCode,
		})
	}
	return nil
}

func (p *demoProvider) VerifyMobileAccount(ctx context.Context, current Student, mobileNumber, code string) (Student, error) {
	if err := p.simulateCall(ctx); err != nil {
		return Student{}, err
	}

	if code != p.referenceCode {
		return Student{}, ErrInvalidCode
	}

	current.MobileNumber = mobileNumber
	current.IsMobileVerified = true
	current.Balance = p.seedBalance // demo behaviour; a real backend decides
	return current, nil
}

// simulateCall stands in for network latency. Calls always eventually
// resolve; context cancellation is the only way out early.
func (p *demoProvider) simulateCall(ctx context.Context) error {
	if p.latency <= 0 {
		return nil
	}
	t := time.NewTimer(p.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
