package api

import (
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/ledger"
	"github.com/taskbazaar/paymentd/models"
)

type mockLedger struct {
	depositFunc           func(target models.Identity, amount btcutil.Amount, externalRef string) (*models.Transaction, error)
	lockEscrowFunc        func(caller models.Identity, taskID string, amount btcutil.Amount, expiry *time.Time) (*models.Transaction, error)
	releaseEscrowFunc     func(caller models.Identity, taskID string, beneficiary models.Identity) (*models.Transaction, error)
	refundEscrowFunc      func(caller models.Identity, taskID string) (*models.Transaction, error)
	requestWithdrawalFunc func(caller models.Identity, amount btcutil.Amount, destination string) (*models.WithdrawalRequest, error)
	processWithdrawalFunc func(id uint64, externalRef string, success bool) (*models.WithdrawalRequest, error)
	sendBonusFunc         func(caller, recipient models.Identity, amount btcutil.Amount, note string) (*models.Transaction, error)
	updatePlatformFeeFunc func(newPercent uint) error
	paramsFunc            func() (*models.LedgerParams, error)
	balanceFunc           func(id models.Identity) (btcutil.Amount, error)
	transactionFunc       func(id uint64) (*models.Transaction, error)
	transactionsFunc      func(id models.Identity, limit, offset int) ([]models.Transaction, error)
	escrowFunc            func(taskID string) (*models.Escrow, error)
	expiredEscrowsFunc    func() ([]models.Escrow, error)
	withdrawalFunc        func(id uint64) (*models.WithdrawalRequest, error)
	withdrawalsFunc       func(requester models.Identity) ([]models.WithdrawalRequest, error)
	statsFunc             func() (*ledger.Stats, error)
	subscribeEventFunc    func(event interface{}) (events.Subscription, error)
}

func (m *mockLedger) Deposit(target models.Identity, amount btcutil.Amount, externalRef string) (*models.Transaction, error) {
	return m.depositFunc(target, amount, externalRef)
}

func (m *mockLedger) LockEscrow(caller models.Identity, taskID string, amount btcutil.Amount, expiry *time.Time) (*models.Transaction, error) {
	return m.lockEscrowFunc(caller, taskID, amount, expiry)
}

func (m *mockLedger) ReleaseEscrow(caller models.Identity, taskID string, beneficiary models.Identity) (*models.Transaction, error) {
	return m.releaseEscrowFunc(caller, taskID, beneficiary)
}

func (m *mockLedger) RefundEscrow(caller models.Identity, taskID string) (*models.Transaction, error) {
	return m.refundEscrowFunc(caller, taskID)
}

func (m *mockLedger) RequestWithdrawal(caller models.Identity, amount btcutil.Amount, destination string) (*models.WithdrawalRequest, error) {
	return m.requestWithdrawalFunc(caller, amount, destination)
}

func (m *mockLedger) ProcessWithdrawal(id uint64, externalRef string, success bool) (*models.WithdrawalRequest, error) {
	return m.processWithdrawalFunc(id, externalRef, success)
}

func (m *mockLedger) SendBonus(caller, recipient models.Identity, amount btcutil.Amount, note string) (*models.Transaction, error) {
	return m.sendBonusFunc(caller, recipient, amount, note)
}

func (m *mockLedger) UpdatePlatformFee(newPercent uint) error {
	return m.updatePlatformFeeFunc(newPercent)
}

func (m *mockLedger) Params() (*models.LedgerParams, error) {
	return m.paramsFunc()
}

func (m *mockLedger) Balance(id models.Identity) (btcutil.Amount, error) {
	return m.balanceFunc(id)
}

func (m *mockLedger) Transaction(id uint64) (*models.Transaction, error) {
	return m.transactionFunc(id)
}

func (m *mockLedger) Transactions(id models.Identity, limit, offset int) ([]models.Transaction, error) {
	return m.transactionsFunc(id, limit, offset)
}

func (m *mockLedger) Escrow(taskID string) (*models.Escrow, error) {
	return m.escrowFunc(taskID)
}

func (m *mockLedger) ExpiredEscrows() ([]models.Escrow, error) {
	return m.expiredEscrowsFunc()
}

func (m *mockLedger) Withdrawal(id uint64) (*models.WithdrawalRequest, error) {
	return m.withdrawalFunc(id)
}

func (m *mockLedger) Withdrawals(requester models.Identity) ([]models.WithdrawalRequest, error) {
	return m.withdrawalsFunc(requester)
}

func (m *mockLedger) Stats() (*ledger.Stats, error) {
	return m.statsFunc()
}

func (m *mockLedger) SubscribeEvent(event interface{}) (events.Subscription, error) {
	return m.subscribeEventFunc(event)
}
