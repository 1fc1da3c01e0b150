package events

import (
	"time"

	"github.com/btcsuite/btcutil"
)

// TypedNotification contains a single method which allows
// us to get the type of the notification. All notifications
// should implement this.
type TypedNotification interface {
	// Type returns the type of the notification.
	Type() string
}

// DepositReceived fires when an external deposit is credited to an
// account.
type DepositReceived struct {
	TransactionID uint64         `json:"transactionID"`
	To            string         `json:"to"`
	Amount        btcutil.Amount `json:"amount"`
	ExternalRef   string         `json:"externalRef"`
}

func (n *DepositReceived) Type() string { return "DepositReceived" }

// EscrowLocked fires when funds are moved out of a payer's balance into
// task escrow.
type EscrowLocked struct {
	TransactionID uint64         `json:"transactionID"`
	TaskID        string         `json:"taskID"`
	Payer         string         `json:"payer"`
	Amount        btcutil.Amount `json:"amount"`
	Expiry        *time.Time     `json:"expiry,omitempty"`
}

func (n *EscrowLocked) Type() string { return "EscrowLocked" }

// EscrowReleased fires when a locked escrow pays out to a beneficiary.
type EscrowReleased struct {
	TransactionID uint64         `json:"transactionID"`
	TaskID        string         `json:"taskID"`
	Payer         string         `json:"payer"`
	Beneficiary   string         `json:"beneficiary"`
	Amount        btcutil.Amount `json:"amount"`
	Fee           btcutil.Amount `json:"fee"`
}

func (n *EscrowReleased) Type() string { return "EscrowReleased" }

// EscrowRefunded fires when a locked escrow is returned to the payer.
type EscrowRefunded struct {
	TransactionID uint64         `json:"transactionID"`
	TaskID        string         `json:"taskID"`
	Payer         string         `json:"payer"`
	Amount        btcutil.Amount `json:"amount"`
}

func (n *EscrowRefunded) Type() string { return "EscrowRefunded" }

// WithdrawalRequested fires when an account requests an external payout.
// The balance has already been debited when this event fires.
type WithdrawalRequested struct {
	WithdrawalID  uint64         `json:"withdrawalID"`
	TransactionID uint64         `json:"transactionID"`
	Requester     string         `json:"requester"`
	Amount        btcutil.Amount `json:"amount"`
	Destination   string         `json:"destination"`
}

func (n *WithdrawalRequested) Type() string { return "WithdrawalRequested" }

// WithdrawalProcessed fires when the external settlement process reports
// the outcome of a pending withdrawal.
type WithdrawalProcessed struct {
	WithdrawalID uint64         `json:"withdrawalID"`
	Requester    string         `json:"requester"`
	Amount       btcutil.Amount `json:"amount"`
	Success      bool           `json:"success"`
	ExternalRef  string         `json:"externalRef"`
}

func (n *WithdrawalProcessed) Type() string { return "WithdrawalProcessed" }

// BonusSent fires when one account tips another directly.
type BonusSent struct {
	TransactionID uint64         `json:"transactionID"`
	From          string         `json:"from"`
	To            string         `json:"to"`
	Amount        btcutil.Amount `json:"amount"`
	Note          string         `json:"note"`
}

func (n *BonusSent) Type() string { return "BonusSent" }

// FeeChanged fires when an administrator updates the platform fee
// percent. The new percent applies only to releases after the change.
type FeeChanged struct {
	OldPercent uint `json:"oldPercent"`
	NewPercent uint `json:"newPercent"`
}

func (n *FeeChanged) Type() string { return "FeeChanged" }
