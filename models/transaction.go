package models

import (
	"time"

	"github.com/btcsuite/btcutil"
)

// TransactionKind describes what a ledger transaction did.
type TransactionKind string

const (
	// KindDeposit is an external deposit credited to an account.
	KindDeposit TransactionKind = "DEPOSIT"
	// KindWithdrawal is an external payout debited from an account.
	KindWithdrawal = "WITHDRAWAL"
	// KindTaskPayment is an escrow release paying a task's worker.
	KindTaskPayment = "TASK_PAYMENT"
	// KindRefund is an escrow refund returning funds to the payer.
	KindRefund = "REFUND"
	// KindBonus is a direct account-to-account tip.
	KindBonus = "BONUS"
	// KindFee is a platform fee charge.
	KindFee = "FEE"
	// KindEscrowLock is funds moving out of a balance into task escrow.
	KindEscrowLock = "ESCROW_LOCK"
	// KindEscrowRelease is funds moving out of task escrow.
	KindEscrowRelease = "ESCROW_RELEASE"
)

// TransactionStatus is the settlement status of a transaction.
type TransactionStatus string

const (
	// StatusPending means the transaction awaits external settlement.
	StatusPending TransactionStatus = "PENDING"
	// StatusProcessing means external settlement is underway.
	StatusProcessing = "PROCESSING"
	// StatusCompleted means the transaction is final.
	StatusCompleted = "COMPLETED"
	// StatusFailed means external settlement failed.
	StatusFailed = "FAILED"
	// StatusRefunded means the transaction was later reversed.
	StatusRefunded = "REFUNDED"
)

// Transaction is one immutable entry in the ledger's transaction log.
// IDs are assigned from a persisted counter and are never reused.
// Once created a transaction is never modified except for the status of
// withdrawals, which transition from pending once the external payout
// settles.
type Transaction struct {
	ID        uint64            `gorm:"primary_key" json:"id"`
	Kind      TransactionKind   `gorm:"index" json:"kind"`
	From      Identity          `gorm:"column:from_id;index" json:"from"`
	To        Identity          `gorm:"column:to_id;index" json:"to"`
	Amount    btcutil.Amount    `json:"amount"`
	Fee       btcutil.Amount    `json:"fee"`
	TaskID    string            `gorm:"index" json:"taskID,omitempty"`
	Timestamp time.Time         `gorm:"index" json:"timestamp"`
	Status    TransactionStatus `gorm:"index" json:"status"`

	// ExternalRef holds the reference handed to us by the external
	// settlement process, such as a bitcoin txid.
	ExternalRef string `json:"externalRef,omitempty"`

	Note string `json:"note,omitempty"`
}
