package registry

import (
	"errors"
	"time"

	"github.com/campuspay/campuspay/core"
)

var (
	// errors
	ErrNotFound    = errors.New("student record not found")
	ErrEmailExists = errors.New("a student with this email already exists")
	ErrNotPending  = errors.New("only pending registrations can be approved or rejected")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string) error
		CreateRecord(rec Record) (Record, error)
		GetRecordByID(id string) (Record, error)
		// FilterRecords applies AND semantics on available QueryFilter fields.
		FilterRecords(filter QueryFilter) ([]Record, error)
		UpdateRecordStatus(id, status string) (Record, error)
		DeleteRecord(id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a pending student record (admin-side registration).
func (svc *Service) Register(nr NewRecord) (Record, error) {
	if err := svc.repo.CheckEmailUniqueness(nr.Email); err != nil {
		if err == ErrEmailExists {
			return Record{}, core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return Record{}, err
	}
	return svc.repo.CreateRecord(Record{
		Name:         nr.FirstName + " " + nr.LastName,
		StudentID:    nr.StudentID,
		Email:        nr.Email,
		MobileNumber: nr.MobileNumber,
		Status:       StatusPending,
		Course:       nr.Course,
		YearSection:  nr.YearSection,
		RegisteredAt: time.Now().UTC(),
	})
}

func (svc *Service) GetByID(id string) (Record, error) {
	return svc.repo.GetRecordByID(id)
}

func (svc *Service) Filter(filter QueryFilter) ([]Record, error) {
	filter.Clean()
	return svc.repo.FilterRecords(filter)
}

// Approve flips a pending registration to verified.
func (svc *Service) Approve(id string) (Record, error) {
	rec, err := svc.repo.GetRecordByID(id)
	if err != nil {
		return Record{}, err
	}
	if rec.Status != StatusPending {
		return Record{}, ErrNotPending
	}
	return svc.repo.UpdateRecordStatus(id, StatusVerified)
}

// Reject removes a pending registration.
func (svc *Service) Reject(id string) error {
	rec, err := svc.repo.GetRecordByID(id)
	if err != nil {
		return err
	}
	if rec.Status != StatusPending {
		return ErrNotPending
	}
	return svc.repo.DeleteRecord(id)
}

// Suspend blocks an account regardless of its prior status.
func (svc *Service) Suspend(id string) (Record, error) {
	if _, err := svc.repo.GetRecordByID(id); err != nil {
		return Record{}, err
	}
	return svc.repo.UpdateRecordStatus(id, StatusSuspended)
}

// Stats counts accounts per status.
func (svc *Service) Stats() (Stats, error) {
	recs, err := svc.repo.FilterRecords(QueryFilter{})
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Total: len(recs)}
	for _, rec := range recs {
		switch rec.Status {
		case StatusVerified:
			stats.Verified++
		case StatusPending:
			stats.Pending++
		case StatusSuspended:
			stats.Suspended++
		}
	}
	return stats, nil
}
