package ledger

import (
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/models"
)

// SendBonus moves amount directly from the caller to recipient with no
// escrow and no fee. It backs tips and goodwill payments outside the task
// workflow. The note is free text supplied by the caller.
func (s *Service) SendBonus(caller, recipient models.Identity, amount btcutil.Amount, note string) (*models.Transaction, error) {
	var record *models.Transaction
	err := s.db.Update(func(tx database.Tx) error {
		if caller.IsAnonymous() {
			return ErrUnauthenticated
		}
		if recipient.IsAnonymous() {
			return ErrInvalidIdentity
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}
		balance, err := balanceOf(tx, caller)
		if err != nil {
			return err
		}
		if balance < amount {
			return ErrInsufficientFunds
		}

		id, err := nextID(tx, transactionCounter)
		if err != nil {
			return err
		}
		if err := debit(tx, caller, amount); err != nil {
			return err
		}
		if err := credit(tx, recipient, amount); err != nil {
			return err
		}

		record = &models.Transaction{
			ID:        id,
			Kind:      models.KindBonus,
			From:      caller,
			To:        recipient,
			Amount:    amount,
			Timestamp: time.Now(),
			Status:    models.StatusCompleted,
			Note:      note,
		}
		if err := tx.Save(record); err != nil {
			return err
		}

		tx.RegisterCommitHook(func() {
			s.bus.Emit(&events.BonusSent{
				TransactionID: record.ID,
				From:          caller.String(),
				To:            recipient.String(),
				Amount:        amount,
				Note:          note,
			})
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
