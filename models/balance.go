package models

import "github.com/btcsuite/btcutil"

// Balance is an identity's spendable funds in satoshis. An identity with
// no row has a balance of zero. The amount never goes negative; every
// debit is preceded by a sufficiency check in the same database
// transaction.
type Balance struct {
	Identity Identity       `gorm:"primary_key" json:"identity"`
	Amount   btcutil.Amount `json:"amount"`
}
