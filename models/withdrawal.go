package models

import (
	"time"

	"github.com/btcsuite/btcutil"
)

// WithdrawalRequest is a pending or processed external payout. The
// requester's balance is debited when the request is created; the
// request then waits for the external settlement process to report
// success or failure. On failure the amount is credited back.
type WithdrawalRequest struct {
	ID        uint64         `gorm:"primary_key" json:"id"`
	Requester Identity       `gorm:"index" json:"requester"`
	Amount    btcutil.Amount `json:"amount"`

	// Destination is an opaque payout address. The ledger does not
	// validate it.
	Destination string `json:"destination"`

	RequestedAt time.Time  `json:"requestedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ExternalRef string     `json:"externalRef,omitempty"`

	Status TransactionStatus `gorm:"index" json:"status"`

	// TransactionID is the id of the ledger transaction recorded for
	// this withdrawal. Its status transitions together with ours.
	TransactionID uint64 `json:"transactionID"`
}
