package ledger

import (
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/models"
)

// Deposit credits target with amount. It is called by the external
// settlement process once an on-chain payment to the user's deposit
// address has been confirmed; externalRef carries the bitcoin txid.
func (s *Service) Deposit(target models.Identity, amount btcutil.Amount, externalRef string) (*models.Transaction, error) {
	var record *models.Transaction
	err := s.db.Update(func(tx database.Tx) error {
		if target.IsAnonymous() {
			return ErrInvalidIdentity
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}
		params, err := s.loadParams(tx)
		if err != nil {
			return err
		}
		if amount < params.MinDeposit {
			return ErrBelowMinimum{Minimum: params.MinDeposit}
		}

		id, err := nextID(tx, transactionCounter)
		if err != nil {
			return err
		}
		if err := credit(tx, target, amount); err != nil {
			return err
		}

		record = &models.Transaction{
			ID:          id,
			Kind:        models.KindDeposit,
			To:          target,
			Amount:      amount,
			Timestamp:   time.Now(),
			Status:      models.StatusCompleted,
			ExternalRef: externalRef,
		}
		if err := tx.Save(record); err != nil {
			return err
		}

		tx.RegisterCommitHook(func() {
			s.bus.Emit(&events.DepositReceived{
				TransactionID: record.ID,
				To:            target.String(),
				Amount:        amount,
				ExternalRef:   externalRef,
			})
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Deposited %d to %s (ref %s)", int64(amount), target, externalRef)
	return record, nil
}
