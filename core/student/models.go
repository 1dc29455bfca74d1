package student

import (
	"github.com/campuspay/campuspay/core"
)

// Student is the authenticated identity of a portal user.
// The whole struct is the session snapshot persisted by the SessionStore;
// PasswordHash never leaves the identity provider.
type Student struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	StudentID        string `json:"student_id"`
	MobileNumber     string `json:"mobile_number"`
	IsMobileVerified bool   `json:"is_mobile_verified"`
	IsEmailVerified  bool   `json:"is_email_verified"`
	Balance          int64  `json:"balance"`
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,uniemail"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	StudentID       string `json:"student_id" validate:"required"`
	MobileNumber    string `json:"mobile_number" validate:"required,phmobile"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.MobileNumber = core.CleanString(ns.MobileNumber)
	return core.Validate.Struct(ns)
}
