// Package dummydb is the in-memory database backing the demo portal. It
// ships pre-seeded with the mock dataset the dashboards are demoed against.
package dummydb

import (
	"sync"

	"github.com/campuspay/campuspay/core/registry"
	"github.com/campuspay/campuspay/core/wallet"
)

type (
	DB struct {
		transaction *transactionTable
		payment     *paymentTable
		student     *studentTable
	}

	transactionTable struct {
		sync.RWMutex
		table map[string]*wallet.Transaction
	}

	paymentTable struct {
		sync.RWMutex
		table map[string]*wallet.Payment
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*registry.Record
	}
)

func Open() (*DB, error) {
	db := &DB{
		transaction: &transactionTable{table: make(map[string]*wallet.Transaction)},
		payment:     &paymentTable{table: make(map[string]*wallet.Payment)},
		student:     &studentTable{table: make(map[string]*registry.Record)},
	}
	return db, nil
}
