package dummydb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campuspay/campuspay/core/wallet"
)

var (
	txPKCount  int
	payPKCount int
)

type walletRepository struct {
	txs      *transactionTable
	payments *paymentTable
}

var _ wallet.Repository = (*walletRepository)(nil) // interface compliance check

func NewWalletRepository(db *DB) wallet.Repository {
	return &walletRepository{txs: db.transaction, payments: db.payment}
}

func (repo *walletRepository) queryTransactions() []wallet.Transaction {
	txs := make([]wallet.Transaction, 0, len(repo.txs.table))
	for _, tx := range repo.txs.table {
		txs = append(txs, *tx)
	}
	return txs
}

func (repo *walletRepository) queryPayments() []wallet.Payment {
	payments := make([]wallet.Payment, 0, len(repo.payments.table))
	for _, p := range repo.payments.table {
		payments = append(payments, *p)
	}
	return payments
}

func (repo *walletRepository) CreateTransaction(tx wallet.Transaction) (wallet.Transaction, error) {
	repo.txs.Lock()
	defer repo.txs.Unlock()

	txPKCount++
	tx.ID = fmt.Sprintf("TXN%03d", txPKCount)
	repo.txs.table[tx.ID] = &tx
	return tx, nil
}

func (repo *walletRepository) FilterTransactions(filter wallet.TransactionFilter) ([]wallet.Transaction, error) {
	repo.txs.RLock()
	defer repo.txs.RUnlock()

	txs := repo.queryTransactions()

	// transactions with search keyword matching the description ?
	if filter.Search != "" {
		var filtered []wallet.Transaction
		for _, tx := range txs {
			if strings.Contains(strings.ToLower(tx.Description), strings.ToLower(filter.Search)) {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}
	if txs != nil && filter.Category != "" {
		var filtered []wallet.Transaction
		for _, tx := range txs {
			if tx.Category == filter.Category {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}

	// newest first
	sort.Slice(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	return txs, nil
}

func (repo *walletRepository) CreatePayment(p wallet.Payment) (wallet.Payment, error) {
	repo.payments.Lock()
	defer repo.payments.Unlock()

	payPKCount++
	p.ID = fmt.Sprintf("PAY%03d", payPKCount)
	repo.payments.table[p.ID] = &p
	return p, nil
}

func (repo *walletRepository) FilterPayments(filter wallet.PaymentFilter) ([]wallet.Payment, error) {
	repo.payments.RLock()
	defer repo.payments.RUnlock()

	payments := repo.queryPayments()

	// payments with search keyword matching name, student id or reference ?
	if filter.Search != "" {
		var filtered []wallet.Payment
		for _, p := range payments {
			if strings.Contains(strings.ToLower(p.StudentName), strings.ToLower(filter.Search)) ||
				strings.Contains(strings.ToLower(p.StudentID), strings.ToLower(filter.Search)) ||
				strings.Contains(strings.ToLower(p.Reference), strings.ToLower(filter.Search)) {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}
	if payments != nil && filter.Status != "" {
		var filtered []wallet.Payment
		for _, p := range payments {
			if p.Status == filter.Status {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}

	sort.Slice(payments, func(i, j int) bool { return payments[i].Date.After(payments[j].Date) })
	return payments, nil
}
