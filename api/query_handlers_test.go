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

func TestQueryHandlers(t *testing.T) {
	runAPITests(t, apiTests{
		{
			name:   "Get balance by identity",
			path:   "/v1/ledger/balance/alice",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.balanceFunc = func(id models.Identity) (btcutil.Amount, error) {
					if id != "alice" {
						return 0, errors.New("unexpected identity")
					}
					return 100000, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return marshalAndSanitizeJSON(balanceResponse{
					Identity: "alice",
					Amount:   100000,
				})
			},
		},
		{
			name:   "Get own balance",
			path:   "/v1/ledger/balance",
			method: http.MethodGet,
			caller: "bob",
			setLedgerMethods: func(l *mockLedger) {
				l.balanceFunc = func(id models.Identity) (btcutil.Amount, error) {
					if id != "bob" {
						return 0, errors.New("unexpected identity")
					}
					return 47500, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return marshalAndSanitizeJSON(balanceResponse{
					Identity: "bob",
					Amount:   47500,
				})
			},
		},
		{
			name:   "Get balance zero for unknown identity",
			path:   "/v1/ledger/balance/nobody",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.balanceFunc = func(id models.Identity) (btcutil.Amount, error) {
					return 0, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return marshalAndSanitizeJSON(balanceResponse{
					Identity: "nobody",
				})
			},
		},
		{
			name:   "Get balance with fiat conversion unavailable",
			path:   "/v1/ledger/balance/alice?currency=USD",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.balanceFunc = func(id models.Identity) (btcutil.Amount, error) {
					return 100000, nil
				}
			},
			statusCode: http.StatusBadRequest,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "exchange rates are not available"}`)), nil
			},
		},
		{
			name:   "Get transaction",
			path:   "/v1/ledger/transaction/1",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.transactionFunc = func(id uint64) (*models.Transaction, error) {
					if id != 1 {
						return nil, ledger.ErrNotFound
					}
					return &models.Transaction{
						ID:     id,
						Kind:   models.KindDeposit,
						To:     "alice",
						Amount: 100000,
						Status: models.StatusCompleted,
					}, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return marshalAndSanitizeJSON(&models.Transaction{
					ID:     1,
					Kind:   models.KindDeposit,
					To:     "alice",
					Amount: 100000,
					Status: models.StatusCompleted,
				})
			},
		},
		{
			name:   "Get transaction not found",
			path:   "/v1/ledger/transaction/99",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.transactionFunc = func(id uint64) (*models.Transaction, error) {
					return nil, ledger.ErrNotFound
				}
			},
			statusCode: http.StatusNotFound,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "not found"}`)), nil
			},
		},
		{
			name:   "Get transaction invalid id",
			path:   "/v1/ledger/transaction/xxx",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.transactionFunc = func(id uint64) (*models.Transaction, error) {
					return nil, nil
				}
			},
			statusCode: http.StatusBadRequest,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "strconv.ParseUint: parsing \"xxx\": invalid syntax"}`)), nil
			},
		},
		{
			name:   "Get transactions with paging",
			path:   "/v1/ledger/transactions/alice?limit=10&offset=5",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.transactionsFunc = func(id models.Identity, limit, offset int) ([]models.Transaction, error) {
					if id != "alice" || limit != 10 || offset != 5 {
						return nil, errors.New("unexpected arguments")
					}
					return []models.Transaction{
						{
							ID:     6,
							Kind:   models.KindDeposit,
							To:     id,
							Amount: 1000,
							Status: models.StatusCompleted,
						},
					}, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return marshalAndSanitizeJSON([]models.Transaction{
					{
						ID:     6,
						Kind:   models.KindDeposit,
						To:     "alice",
						Amount: 1000,
						Status: models.StatusCompleted,
					},
				})
			},
		},
		{
			name:   "Get own transactions",
			path:   "/v1/ledger/transactions",
			method: http.MethodGet,
			caller: "bob",
			setLedgerMethods: func(l *mockLedger) {
				l.transactionsFunc = func(id models.Identity, limit, offset int) ([]models.Transaction, error) {
					if id != "bob" || limit != -1 || offset != 0 {
						return nil, errors.New("unexpected arguments")
					}
					return nil, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return []byte(`[]`), nil
			},
		},
		{
			name:   "Get transactions invalid limit",
			path:   "/v1/ledger/transactions/alice?limit=xxx",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.transactionsFunc = func(id models.Identity, limit, offset int) ([]models.Transaction, error) {
					return nil, nil
				}
			},
			statusCode: http.StatusBadRequest,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "strconv.Atoi: parsing \"xxx\": invalid syntax"}`)), nil
			},
		},
		{
			name:   "Get stats",
			path:   "/v1/ledger/stats",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
				l.statsFunc = func() (*ledger.Stats, error) {
					return &ledger.Stats{
						TransactionCount:       3,
						TotalVolume:            175000,
						FeesCollected:          2500,
						LockedEscrowCount:      1,
						LockedEscrowTotal:      50000,
						PendingWithdrawalCount: 1,
						PendingWithdrawalTotal: 20000,
					}, nil
				}
			},
			statusCode: http.StatusOK,
			expectedResponse: func() ([]byte, error) {
				return marshalAndSanitizeJSON(&ledger.Stats{
					TransactionCount:       3,
					TotalVolume:            175000,
					FeesCollected:          2500,
					LockedEscrowCount:      1,
					LockedEscrowTotal:      50000,
					PendingWithdrawalCount: 1,
					PendingWithdrawalTotal: 20000,
				})
			},
		},
		{
			name:   "Get exchange rates unavailable",
			path:   "/v1/ledger/exchangerates",
			method: http.MethodGet,
			setLedgerMethods: func(l *mockLedger) {
			},
			statusCode: http.StatusBadRequest,
			expectedResponse: func() ([]byte, error) {
				return []byte(fmt.Sprintf("%s\n", `{"error": "exchange rates are not available"}`)), nil
			},
		},
	})
}
