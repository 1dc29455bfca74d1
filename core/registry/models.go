package registry

import (
	"time"

	"github.com/campuspay/campuspay/core"
)

// Account statuses
const (
	StatusPending   = "pending"
	StatusVerified  = "verified"
	StatusSuspended = "suspended"
)

// Record is a student account as reviewed on the admin dashboard.
type Record struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StudentID    string    `json:"student_id"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number"`
	Status       string    `json:"status"`
	Balance      int64     `json:"balance"`
	TotalSpent   int64     `json:"total_spent"`
	Course       string    `json:"course"`
	YearSection  string    `json:"year_section"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewRecord contains information needed for admin-side student registration.
type NewRecord struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	StudentID    string `json:"student_id" validate:"required"`
	Email        string `json:"email" validate:"required,uniemail"`
	MobileNumber string `json:"mobile_number" validate:"required,phmobile"`
	Course       string `json:"course" validate:"required"`
	YearSection  string `json:"year_section" validate:"required"`
}

func (nr *NewRecord) Validate() error {
	nr.FirstName = core.CleanString(nr.FirstName)
	nr.LastName = core.CleanString(nr.LastName)
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.Email = core.CleanString(nr.Email, true /* lower */)
	nr.MobileNumber = core.CleanString(nr.MobileNumber)
	nr.Course = core.CleanString(nr.Course)
	nr.YearSection = core.CleanString(nr.YearSection)
	return core.Validate.Struct(nr)
}

// QueryFilter applies AND semantics on its fields. Search does a
// case-insensitive substring match on name, student id or email.
type QueryFilter struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

func (f *QueryFilter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Status = core.CleanString(f.Status, true /* lower */)
}

// Stats are the per-status account counts shown above the student table.
type Stats struct {
	Total     int `json:"total"`
	Verified  int `json:"verified"`
	Pending   int `json:"pending"`
	Suspended int `json:"suspended"`
}
