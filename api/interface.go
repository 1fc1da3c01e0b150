package api

import (
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/ledger"
	"github.com/taskbazaar/paymentd/models"
)

// Ledger is the surface of the payment service the gateway exposes over
// HTTP. It exists as an interface so the handlers can be tested without
// a live database.
type Ledger interface {
	Deposit(target models.Identity, amount btcutil.Amount, externalRef string) (*models.Transaction, error)
	LockEscrow(caller models.Identity, taskID string, amount btcutil.Amount, expiry *time.Time) (*models.Transaction, error)
	ReleaseEscrow(caller models.Identity, taskID string, beneficiary models.Identity) (*models.Transaction, error)
	RefundEscrow(caller models.Identity, taskID string) (*models.Transaction, error)
	RequestWithdrawal(caller models.Identity, amount btcutil.Amount, destination string) (*models.WithdrawalRequest, error)
	ProcessWithdrawal(id uint64, externalRef string, success bool) (*models.WithdrawalRequest, error)
	SendBonus(caller, recipient models.Identity, amount btcutil.Amount, note string) (*models.Transaction, error)
	UpdatePlatformFee(newPercent uint) error
	Params() (*models.LedgerParams, error)
	Balance(id models.Identity) (btcutil.Amount, error)
	Transaction(id uint64) (*models.Transaction, error)
	Transactions(id models.Identity, limit, offset int) ([]models.Transaction, error)
	Escrow(taskID string) (*models.Escrow, error)
	ExpiredEscrows() ([]models.Escrow, error)
	Withdrawal(id uint64) (*models.WithdrawalRequest, error)
	Withdrawals(requester models.Identity) ([]models.WithdrawalRequest, error)
	Stats() (*ledger.Stats, error)
	SubscribeEvent(event interface{}) (events.Subscription, error)
}
