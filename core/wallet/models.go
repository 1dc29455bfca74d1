package wallet

import (
	"time"

	"github.com/campuspay/campuspay/core"
)

// Transaction types
const (
	TypePayment = "payment"
	TypeCredit  = "credit"
)

// Transaction categories
const (
	CategoryFees      = "fees"
	CategoryAllowance = "allowance"
	CategoryCashIn    = "cash-in"
)

// Statuses (transactions and payment records)
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Fee types accepted by the payment form.
const (
	FeeSchoolFees = "school-fees"
	FeeOrgFees    = "org-fees"
	FeeEventFees  = "event-fees"
	FeeOther      = "other"
)

// Transaction is one line of a student's wallet history. Amount is in whole
// currency units, negative for outgoing payments.
type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Category    string    `json:"category"`
}

// Payment is the gateway-side record of a fee payment or allowance transfer,
// as inspected on the admin dashboard.
type Payment struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	StudentID   string    `json:"student_id"`
	Amount      int64     `json:"amount"`
	FeeType     string    `json:"fee_type"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
	Date        time.Time `json:"date"`
	Reference   string    `json:"reference"`
}

// NewPayment contains information needed to submit a fee payment.
type NewPayment struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	FeeType     string `json:"fee_type" validate:"required,oneof=school-fees org-fees event-fees other"`
	Description string `json:"description"`
}

func (np *NewPayment) Validate() error {
	np.Description = core.CleanString(np.Description)
	return core.Validate.Struct(np)
}

// AllowanceRequest contains information needed to request an allowance from
// the student's parents.
type AllowanceRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Note   string `json:"note"`
}

func (ar *AllowanceRequest) Validate() error {
	ar.Note = core.CleanString(ar.Note)
	return core.Validate.Struct(ar)
}

// TransactionFilter applies AND semantics on its fields.
// Search does a case-insensitive substring match on Transaction.Description.
type TransactionFilter struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}

func (f *TransactionFilter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Category = core.CleanString(f.Category, true /* lower */)
}

// PaymentFilter applies AND semantics on its fields. Search does a
// case-insensitive substring match on student name, student id or reference.
type PaymentFilter struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

func (f *PaymentFilter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Status = core.CleanString(f.Status, true /* lower */)
}
