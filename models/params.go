package models

import "github.com/btcsuite/btcutil"

// LedgerParams is the single row of runtime-settable ledger parameters.
// The fee percent may be changed by an administrator while the daemon is
// running and must survive a restart, so it lives in the database rather
// than the config file.
type LedgerParams struct {
	ID            uint           `gorm:"primary_key" json:"-"`
	FeePercent    uint           `json:"feePercent"`
	MinDeposit    btcutil.Amount `json:"minDeposit"`
	MinWithdrawal btcutil.Amount `json:"minWithdrawal"`
}
