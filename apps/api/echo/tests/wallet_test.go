package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/campuspay/campuspay/core/wallet"
	testutil "github.com/campuspay/campuspay/tests"
)

func Test_walletApi_gating(t *testing.T) {
	app := setup(t)

	// anonymous
	req, rec := newRequest(http.MethodGet, "/v1/wallet/transactions")
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// authenticated but unverified
	testutil.RegisterStudent(t, app.studentSession, "test.student@university.edu.ph")
	req, rec = newRequest(http.MethodGet, "/v1/wallet/transactions")
	app.server.ServeHTTP(rec, req)
	tt := httpTest{
		wantCode: http.StatusForbidden,
		wantData: marchallObj(t, httpErr{Error: "mobile account not verified"}),
	}
	checkCodeAndData(t, tt, rec)
}

func Test_walletApi_transactions(t *testing.T) {
	app := setup(t)
	testutil.LoginDemoStudent(t, app.studentSession)

	req, rec := newRequest(http.MethodGet, "/v1/wallet/transactions")
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want %d", rec.Code, http.StatusOK)
	}
	var txs []wallet.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &txs); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(txs) != 6 {
		t.Errorf("len(txs) = %d, want 6 seeded transactions", len(txs))
	}

	req, rec = newRequest(http.MethodGet, "/v1/wallet/transactions?search=lab&category=fees")
	app.server.ServeHTTP(rec, req)
	txs = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &txs); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(txs) != 1 || txs[0].Description != "Lab Fee - Chemistry" {
		t.Errorf("filtered transactions = %+v", txs)
	}
}

func Test_walletApi_submitPayment(t *testing.T) {
	app := setup(t)
	usr := testutil.LoginDemoStudent(t, app.studentSession)

	tests := []httpTest{
		{
			name: "unknown fee type", method: http.MethodPost, path: "/v1/wallet/payments",
			body:     marchallObj(t, map[string]interface{}{"amount": 100, "fee_type": "tuition"}),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"fee_type":"fee_type must be one of [school-fees org-fees event-fees other]"}`),
		},
		{
			name: "insufficient balance", method: http.MethodPost, path: "/v1/wallet/payments",
			body:     marchallObj(t, map[string]interface{}{"amount": 99999, "fee_type": "school-fees"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "insufficient balance"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	req, rec := newRequest(http.MethodPost, "/v1/wallet/payments",
		marchallObj(t, map[string]interface{}{"amount": 500, "fee_type": "school-fees"}))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("payment code = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var tx wallet.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if tx.Amount != -500 || tx.Status != wallet.StatusCompleted {
		t.Errorf("unexpected transaction: %+v", tx)
	}

	// the session balance was debited and re-persisted
	after, _ := app.studentSession.Current()
	if want := usr.Balance - 500; after.Balance != want {
		t.Errorf("Balance = %d, want %d", after.Balance, want)
	}
}

func Test_walletApi_requestAllowance(t *testing.T) {
	app := setup(t)
	usr := testutil.LoginDemoStudent(t, app.studentSession)

	req, rec := newRequest(http.MethodPost, "/v1/wallet/allowance",
		marchallObj(t, map[string]interface{}{"amount": 1500, "note": "books"}))
	app.server.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("allowance code = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var p wallet.Payment
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if p.Status != wallet.StatusPending || p.Method != "Parent Transfer" {
		t.Errorf("unexpected payment: %+v", p)
	}

	// the request settles out-of-band; the balance is untouched
	after, _ := app.studentSession.Current()
	if after.Balance != usr.Balance {
		t.Errorf("Balance = %d, want %d", after.Balance, usr.Balance)
	}
}
