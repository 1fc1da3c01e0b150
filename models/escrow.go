package models

import (
	"time"

	"github.com/btcsuite/btcutil"
)

// Escrow holds funds removed from a payer's spendable balance against a
// specific task. A task has at most one escrow record at a time, keyed by
// the task ID. The record is created locked and unlocks exactly once,
// either by a release to a beneficiary or a refund back to the payer.
// Once unlocked it is immutable history.
type Escrow struct {
	TaskID string         `gorm:"primary_key" json:"taskID"`
	Amount btcutil.Amount `json:"amount"`
	Payer  Identity       `gorm:"index" json:"payer"`

	// Beneficiary is set only when the escrow is released. It stays
	// unset on a refund.
	Beneficiary Identity `json:"beneficiary,omitempty"`

	Locked    bool      `gorm:"index" json:"locked"`
	CreatedAt time.Time `json:"createdAt"`

	// Expiry is an optional deadline after which the escrow is reported
	// by the expired-escrows query. The ledger itself never acts on it.
	Expiry *time.Time `json:"expiry,omitempty"`
}
