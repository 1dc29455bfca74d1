package wallet

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuspay/campuspay/core"
	"github.com/campuspay/campuspay/core/student"
)

type (
	Repository interface {
		CreateTransaction(tx Transaction) (Transaction, error)
		// FilterTransactions returns history newest-first.
		FilterTransactions(filter TransactionFilter) ([]Transaction, error)
		CreatePayment(p Payment) (Payment, error)
		FilterPayments(filter PaymentFilter) ([]Payment, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		latency time.Duration
	}
)

func NewService(conf *core.Config, repo Repository, mailSvc core.EmailService) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		latency: conf.Demo.Latency,
	}
}

// History returns the student's transaction history, filtered.
func (svc *Service) History(filter TransactionFilter) ([]Transaction, error) {
	filter.Clean()
	return svc.repo.FilterTransactions(filter)
}

// Payments returns gateway payment records for the admin dashboard, filtered.
func (svc *Service) Payments(filter PaymentFilter) ([]Payment, error) {
	filter.Clean()
	return svc.repo.FilterPayments(filter)
}

// SubmitPayment runs a fee payment through the simulated gateway. The caller
// is responsible for debiting the session balance once this returns.
// Insufficient balance is rejected before the gateway is invoked.
func (svc *Service) SubmitPayment(ctx context.Context, st student.Student, np NewPayment) (Transaction, error) {
	if err := np.Validate(); err != nil {
		return Transaction{}, err
	}
	if st.Balance < np.Amount {
		return Transaction{}, student.ErrInsufficientFunds
	}
	if err := svc.simulateGateway(ctx); err != nil {
		return Transaction{}, err
	}

	now := time.Now().UTC()
	desc := np.Description
	if desc == "" {
		desc = feeDescription(np.FeeType)
	}

	payment, err := svc.repo.CreatePayment(Payment{
		StudentName: st.Name,
		StudentID:   st.StudentID,
		Amount:      np.Amount,
		FeeType:     np.FeeType,
		Status:      StatusCompleted,
		Method:      "GCash",
		Date:        now,
		Reference:   newReference("GC"),
	})
	if err != nil {
		return Transaction{}, err
	}

	tx, err := svc.repo.CreateTransaction(Transaction{
		Type:        TypePayment,
		Description: desc,
		Amount:      -np.Amount,
		Date:        now,
		Status:      StatusCompleted,
		Category:    CategoryFees,
	})
	if err != nil {
		return Transaction{}, err
	}

	if svc.mailSvc != nil {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: st.Name, Address: st.Email}},
			Subject: "Payment received",
			BodyStr: fmt.Sprintf("Your payment of %d for %s was processed successfully.\nReference: %s",
				np.Amount, desc, payment.Reference),
		})
	}
	return tx, nil
}

// RequestAllowance records a pending allowance request; the transfer itself
// settles out-of-band (a parent confirming on their side).
func (svc *Service) RequestAllowance(ctx context.Context, st student.Student, ar AllowanceRequest) (Payment, error) {
	if err := ar.Validate(); err != nil {
		return Payment{}, err
	}
	if err := svc.simulateGateway(ctx); err != nil {
		return Payment{}, err
	}

	return svc.repo.CreatePayment(Payment{
		StudentName: st.Name,
		StudentID:   st.StudentID,
		Amount:      ar.Amount,
		FeeType:     CategoryAllowance,
		Status:      StatusPending,
		Method:      "Parent Transfer",
		Date:        time.Now().UTC(),
		Reference:   newReference("PT"),
	})
}

// simulateGateway stands in for the payment gateway round-trip; it always
// eventually succeeds.
func (svc *Service) simulateGateway(ctx context.Context) error {
	if svc.latency <= 0 {
		return nil
	}
	t := time.NewTimer(svc.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func feeDescription(feeType string) string {
	switch feeType {
	case FeeSchoolFees:
		return "School Fees"
	case FeeOrgFees:
		return "Organization Fees"
	case FeeEventFees:
		return "Event Fees"
	default:
		return "Other Fees"
	}
}

func newReference(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + id[:10]
}
