package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/btcsuite/btcutil"
	"github.com/taskbazaar/paymentd/ledger"
	"github.com/taskbazaar/paymentd/models"
)

func TestLedgerHandlers(t *testing.T) {
	runAPITests(t, apiTests{
		{
			name:   "Post deposit",
			path:   "/v1/ledger/deposit",
			method: http.MethodPost,
			body:   []byte(`{"target": "alice", "amount": 100000, "externalRef": "txid1"}`),
			setLedgerMethods: func(l *mockLedger) {
				l.depositFunc = func(target models.Identity, amount btcutil.Amount, externalRef string) (*models.Transaction, error) {
					if target != "alice" || amount != 100000 || externalRef != "txid1" {
						return nil, errors.New("unexpected arguments")
					}
					return &models.Transaction{
						ID:          1,
						Kind:        models.KindDeposit,
						To:          target,
						Amount:      amount,
						Status:      models.StatusCompleted,
						ExternalRef: externalRef,
					}, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return marshalAndSanitizeJSON(&models.Transaction{
					ID:          1,
					Kind:        models.KindDeposit,
					To:          "alice",
					Amount:      100000,
					Status:      models.StatusCompleted,
					ExternalRef: "txid1",
				})
			},
		},
		{
			name:   "Post deposit below minimum",
			path:   "/v1/ledger/deposit",
			method: http.MethodPost,
			body:   []byte(`{"target": "alice", "amount": 1}`),
			setLedgerMethods: func(l *mockLedger) {
				l.depositFunc = func(target models.Identity, amount btcutil.Amount, externalRef string) (*models.Transaction, error) {
					return nil, ledger.ErrBelowMinimum{Minimum: 1000}
				}
			},
			statusCode: http.StatusBadRequest,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "amount is below the minimum of 1000"}`)), nil
			},
		},
		{
			name:   "Post deposit negative amount",
			path:   "/v1/ledger/deposit",
			method: http.MethodPost,
			body:   []byte(`{"target": "alice", "amount": -5000}`),
			setLedgerMethods: func(l *mockLedger) {
				l.depositFunc = func(target models.Identity, amount btcutil.Amount, externalRef string) (*models.Transaction, error) {
					return nil, ledger.ErrInvalidAmount
				}
			},
			statusCode: http.StatusBadRequest,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "amount must be positive"}`)), nil
			},
		},
		{
			name:   "Post deposit invalid body",
			path:   "/v1/ledger/deposit",
			method: http.MethodPost,
			body:   []byte(`xxx`),
			setLedgerMethods: func(l *mockLedger) {
				l.depositFunc = func(target models.Identity, amount btcutil.Amount, externalRef string) (*models.Transaction, error) {
					return nil, nil
				}
			},
			statusCode: http.StatusBadRequest,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "invalid character 'x' looking for beginning of value"}`)), nil
			},
		},
		{
			name:   "Post bonus",
			path:   "/v1/ledger/bonus",
			method: http.MethodPost,
			caller: "alice",
			body:   []byte(`{"recipient": "bob", "amount": 5000, "note": "great work"}`),
			setLedgerMethods: func(l *mockLedger) {
				l.sendBonusFunc = func(caller, recipient models.Identity, amount btcutil.Amount, note string) (*models.Transaction, error) {
					if caller != "alice" || recipient != "bob" {
						return nil, errors.New("unexpected arguments")
					}
					return &models.Transaction{
						ID:     2,
						Kind:   models.KindBonus,
						From:   caller,
						To:     recipient,
						Amount: amount,
						Status: models.StatusCompleted,
						Note:   note,
					}, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return marshalAndSanitizeJSON(&models.Transaction{
					ID:     2,
					Kind:   models.KindBonus,
					From:   "alice",
					To:     "bob",
					Amount: 5000,
					Status: models.StatusCompleted,
					Note:   "great work",
				})
			},
		},
		{
			name:   "Post bonus unauthenticated",
			path:   "/v1/ledger/bonus",
			method: http.MethodPost,
			body:   []byte(`{"recipient": "bob", "amount": 5000}`),
			setLedgerMethods: func(l *mockLedger) {
				l.sendBonusFunc = func(caller, recipient models.Identity, amount btcutil.Amount, note string) (*models.Transaction, error) {
					return nil, ledger.ErrUnauthenticated
				}
			},
			statusCode: http.StatusUnauthorized,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "unauthenticated caller"}`)), nil
			},
		},
		{
			name:   "Post bonus insufficient funds",
			path:   "/v1/ledger/bonus",
			method: http.MethodPost,
			caller: "alice",
			body:   []byte(`{"recipient": "bob", "amount": 5000}`),
			setLedgerMethods: func(l *mockLedger) {
				l.sendBonusFunc = func(caller, recipient models.Identity, amount btcutil.Amount, note string) (*models.Transaction, error) {
					return nil, ledger.ErrInsufficientFunds
				}
			},
			statusCode: http.StatusConflict,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "insufficient funds"}`)), nil
			},
		},
		{
			name:   "Put fee",
			path:   "/v1/ledger/fee",
			method: http.MethodPut,
			body:   []byte(`{"feePercent": 10}`),
			setLedgerMethods: func(l *mockLedger) {
				l.updatePlatformFeeFunc = func(newPercent uint) error {
					if newPercent != 10 {
						return errors.New("unexpected fee percent")
					}
					return nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return nil, nil
			},
		},
		{
			name:   "Put fee too high",
			path:   "/v1/ledger/fee",
			method: http.MethodPut,
			body:   []byte(`{"feePercent": 90}`),
			setLedgerMethods: func(l *mockLedger) {
				l.updatePlatformFeeFunc = func(newPercent uint) error {
					return ledger.ErrFeeTooHigh{Max: 20}
				}
			},
			statusCode: http.StatusBadRequest,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "fee percent exceeds the maximum of 20"}`)), nil
			},
		},
		{
			name:   "Get params",
			path:   "/v1/ledger/params",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.paramsFunc = func() (*models.LedgerParams, error) {
					return &models.LedgerParams{
						ID:            1,
						FeePercent:    5,
						MinDeposit:    1000,
						MinWithdrawal: 10000,
					}, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return marshalAndSanitizeJSON(&models.LedgerParams{
					FeePercent:    5,
					MinDeposit:    1000,
					MinWithdrawal: 10000,
				})
			},
		},
	})
}
