package ledger

import (
	"github.com/btcsuite/btcutil"
	"github.com/jinzhu/gorm"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/models"
)

// balanceOf returns an identity's spendable balance. An identity with no
// balance row has a balance of zero; that is never an error.
func balanceOf(dbtx database.Tx, id models.Identity) (btcutil.Amount, error) {
	var balance models.Balance
	err := dbtx.Read().Where("identity = ?", id.String()).First(&balance).Error
	if gorm.IsRecordNotFoundError(err) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

// credit adds amount to an identity's balance, creating the row if needed.
func credit(dbtx database.Tx, id models.Identity, amount btcutil.Amount) error {
	current, err := balanceOf(dbtx, id)
	if err != nil {
		return err
	}
	return dbtx.Save(&models.Balance{Identity: id, Amount: current + amount})
}

// debit removes amount from an identity's balance. The caller must have
// checked sufficiency already; this re-checks as the last line of defense
// against a balance going negative.
func debit(dbtx database.Tx, id models.Identity, amount btcutil.Amount) error {
	current, err := balanceOf(dbtx, id)
	if err != nil {
		return err
	}
	if current < amount {
		return ErrInsufficientFunds
	}
	return dbtx.Save(&models.Balance{Identity: id, Amount: current - amount})
}

// nextID increments the named persisted counter and returns the previous
// value. The counter row commits in the same transaction as the record
// using the id, so ids are durable before they are handed out and are
// never reused across restarts.
func nextID(dbtx database.Tx, name string) (uint64, error) {
	counter := models.Counter{Name: name, Next: 1}
	err := dbtx.Read().Where("name = ?", name).First(&counter).Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		return 0, err
	}
	id := counter.Next
	counter.Next++
	if err := dbtx.Save(&counter); err != nil {
		return 0, err
	}
	return id, nil
}

// params loads the persisted ledger parameter row.
func (s *Service) loadParams(dbtx database.Tx) (models.LedgerParams, error) {
	var params models.LedgerParams
	err := dbtx.Read().First(&params).Error
	return params, err
}
