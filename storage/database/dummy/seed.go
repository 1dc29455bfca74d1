package dummydb

import (
	"time"

	"github.com/campuspay/campuspay/core/registry"
	"github.com/campuspay/campuspay/core/wallet"
)

func date(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// Seed loads the demo dataset the dashboards are demoed against. Call once
// right after Open.
func (db *DB) Seed() {
	txs := []wallet.Transaction{
		{ID: "TXN001", Type: wallet.TypePayment, Description: "Registration Fee - Semester 1", Amount: -2500, Date: date(2024, time.January, 15, 0, 0), Status: wallet.StatusCompleted, Category: wallet.CategoryFees},
		{ID: "TXN002", Type: wallet.TypePayment, Description: "Library Fee", Amount: -500, Date: date(2024, time.January, 12, 0, 0), Status: wallet.StatusCompleted, Category: wallet.CategoryFees},
		{ID: "TXN003", Type: wallet.TypeCredit, Description: "Allowance Received", Amount: 3000, Date: date(2024, time.January, 10, 0, 0), Status: wallet.StatusCompleted, Category: wallet.CategoryAllowance},
		{ID: "TXN004", Type: wallet.TypePayment, Description: "Lab Fee - Chemistry", Amount: -750, Date: date(2024, time.January, 8, 0, 0), Status: wallet.StatusCompleted, Category: wallet.CategoryFees},
		{ID: "TXN005", Type: wallet.TypeCredit, Description: "Cash In from Bank", Amount: 5000, Date: date(2024, time.January, 5, 0, 0), Status: wallet.StatusCompleted, Category: wallet.CategoryCashIn},
		{ID: "TXN006", Type: wallet.TypePayment, Description: "Registration Fee", Amount: -1200, Date: date(2024, time.January, 3, 0, 0), Status: wallet.StatusCompleted, Category: wallet.CategoryFees},
	}

	payments := []wallet.Payment{
		{ID: "PAY001", StudentName: "Juan Dela Cruz", StudentID: "2024-00123", Amount: 2500, FeeType: wallet.FeeSchoolFees, Status: wallet.StatusCompleted, Method: "GCash", Date: date(2024, time.January, 15, 14, 30), Reference: "GC123456789"},
		{ID: "PAY002", StudentName: "Maria Santos", StudentID: "2024-00124", Amount: 1200, FeeType: wallet.FeeSchoolFees, Status: wallet.StatusPending, Method: "GCash", Date: date(2024, time.January, 15, 13, 45), Reference: "GC123456790"},
		{ID: "PAY003", StudentName: "Pedro Rodriguez", StudentID: "2024-00125", Amount: 750, FeeType: wallet.FeeSchoolFees, Status: wallet.StatusFailed, Method: "GCash", Date: date(2024, time.January, 15, 12, 20), Reference: "GC123456791"},
		{ID: "PAY004", StudentName: "Ana Garcia", StudentID: "2024-00126", Amount: 3000, FeeType: wallet.CategoryAllowance, Status: wallet.StatusCompleted, Method: "Parent Transfer", Date: date(2024, time.January, 15, 11, 15), Reference: "PT123456792"},
	}

	students := []registry.Record{
		{ID: "1", Name: "Juan Dela Cruz", StudentID: "2024-00123", Email: "juan.delacruz@university.edu.ph", MobileNumber: "09171234567", Status: registry.StatusVerified, Balance: 2450, TotalSpent: 15240, Course: "BS Computer Science", YearSection: "3-A", RegisteredAt: date(2024, time.January, 15, 0, 0)},
		{ID: "2", Name: "Maria Santos", StudentID: "2024-00124", Email: "maria.santos@university.edu.ph", MobileNumber: "09181234567", Status: registry.StatusPending, Balance: 0, TotalSpent: 0, Course: "BS Accountancy", YearSection: "1-B", RegisteredAt: date(2024, time.January, 16, 0, 0)},
		{ID: "3", Name: "Pedro Rodriguez", StudentID: "2024-00125", Email: "pedro.rodriguez@university.edu.ph", MobileNumber: "09191234567", Status: registry.StatusVerified, Balance: 1200, TotalSpent: 8500, Course: "BS Civil Engineering", YearSection: "2-C", RegisteredAt: date(2024, time.January, 14, 0, 0)},
		{ID: "4", Name: "Ana Garcia", StudentID: "2024-00126", Email: "ana.garcia@university.edu.ph", MobileNumber: "09201234567", Status: registry.StatusSuspended, Balance: 500, TotalSpent: 3200, Course: "BS Psychology", YearSection: "4-A", RegisteredAt: date(2024, time.January, 12, 0, 0)},
	}

	db.transaction.Lock()
	for i := range txs {
		db.transaction.table[txs[i].ID] = &txs[i]
	}
	txPKCount = len(txs)
	db.transaction.Unlock()

	db.payment.Lock()
	for i := range payments {
		db.payment.table[payments[i].ID] = &payments[i]
	}
	payPKCount = len(payments)
	db.payment.Unlock()

	db.student.Lock()
	for i := range students {
		db.student.table[students[i].ID] = &students[i]
	}
	studentPKCount = len(students)
	db.student.Unlock()
}
