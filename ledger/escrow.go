package ledger

import (
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/jinzhu/gorm"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/models"
)

// LockEscrow moves amount out of the caller's spendable balance and holds
// it against taskID. A task may only have one locked escrow at a time; a
// task whose prior escrow was already released or refunded may be locked
// again, which replaces the historical record.
//
// The task board calls this at task creation. If its own task write
// succeeded but this call fails, the orchestrator is responsible for
// compensating; the ledger never reaches back into task state.
func (s *Service) LockEscrow(caller models.Identity, taskID string, amount btcutil.Amount, expiry *time.Time) (*models.Transaction, error) {
	var record *models.Transaction
	err := s.db.Update(func(tx database.Tx) error {
		if caller.IsAnonymous() {
			return ErrUnauthenticated
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}

		var existing models.Escrow
		err := tx.Read().Where("task_id = ?", taskID).First(&existing).Error
		if err != nil && !gorm.IsRecordNotFoundError(err) {
			return err
		}
		if err == nil && existing.Locked {
			return ErrAlreadyLocked
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

		escrow := &models.Escrow{
			TaskID:      taskID,
			Amount:      amount,
			Payer:       caller,
			Beneficiary: models.AnonymousIdentity,
			Locked:      true,
			CreatedAt:   time.Now(),
			Expiry:      expiry,
		}
		if err := tx.Save(escrow); err != nil {
			return err
		}

		record = &models.Transaction{
			ID:        id,
			Kind:      models.KindEscrowLock,
			From:      caller,
			Amount:    amount,
			TaskID:    taskID,
			Timestamp: time.Now(),
			Status:    models.StatusCompleted,
		}
		if err := tx.Save(record); err != nil {
			return err
		}

		tx.RegisterCommitHook(func() {
			s.bus.Emit(&events.EscrowLocked{
				TransactionID: record.ID,
				TaskID:        taskID,
				Payer:         caller.String(),
				Amount:        amount,
				Expiry:        expiry,
			})
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Locked %d into escrow for task %s", int64(amount), taskID)
	return record, nil
}

// ReleaseEscrow unlocks the escrow held against taskID and pays the
// beneficiary the locked amount minus the platform fee. Only the original
// payer may release. The fee is computed with truncating integer division
// at the percent in effect right now; fee changes are never retroactive.
func (s *Service) ReleaseEscrow(caller models.Identity, taskID string, beneficiary models.Identity) (*models.Transaction, error) {
	var record *models.Transaction
	err := s.db.Update(func(tx database.Tx) error {
		if beneficiary.IsAnonymous() {
			return ErrInvalidIdentity
		}

		var escrow models.Escrow
		err := tx.Read().Where("task_id = ?", taskID).First(&escrow).Error
		if gorm.IsRecordNotFoundError(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if escrow.Payer != caller {
			return ErrNotPayer
		}
		if !escrow.Locked {
			return ErrAlreadyReleased
		}

		params, err := s.loadParams(tx)
		if err != nil {
			return err
		}
		fee := escrow.Amount * btcutil.Amount(params.FeePercent) / 100

		id, err := nextID(tx, transactionCounter)
		if err != nil {
			return err
		}
		if err := credit(tx, beneficiary, escrow.Amount-fee); err != nil {
			return err
		}

		escrow.Locked = false
		escrow.Beneficiary = beneficiary
		if err := tx.Save(&escrow); err != nil {
			return err
		}

		record = &models.Transaction{
			ID:        id,
			Kind:      models.KindTaskPayment,
			From:      escrow.Payer,
			To:        beneficiary,
			Amount:    escrow.Amount,
			Fee:       fee,
			TaskID:    taskID,
			Timestamp: time.Now(),
			Status:    models.StatusCompleted,
		}
		if err := tx.Save(record); err != nil {
			return err
		}

		tx.RegisterCommitHook(func() {
			s.bus.Emit(&events.EscrowReleased{
				TransactionID: record.ID,
				TaskID:        taskID,
				Payer:         escrow.Payer.String(),
				Beneficiary:   beneficiary.String(),
				Amount:        escrow.Amount,
				Fee:           fee,
			})
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Released escrow for task %s to %s (fee %d)", taskID, beneficiary, int64(record.Fee))
	return record, nil
}

// RefundEscrow unlocks the escrow held against taskID and returns the full
// locked amount to the payer. No fee is charged on a refund. Only the
// original payer may refund, and an escrow can be refunded at most once.
func (s *Service) RefundEscrow(caller models.Identity, taskID string) (*models.Transaction, error) {
	var record *models.Transaction
	err := s.db.Update(func(tx database.Tx) error {
		var escrow models.Escrow
		err := tx.Read().Where("task_id = ?", taskID).First(&escrow).Error
		if gorm.IsRecordNotFoundError(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if escrow.Payer != caller {
			return ErrNotPayer
		}
		if !escrow.Locked {
			return ErrAlreadyReleased
		}

		id, err := nextID(tx, transactionCounter)
		if err != nil {
			return err
		}
		if err := credit(tx, escrow.Payer, escrow.Amount); err != nil {
			return err
		}

		escrow.Locked = false
		if err := tx.Save(&escrow); err != nil {
			return err
		}

		record = &models.Transaction{
			ID:        id,
			Kind:      models.KindRefund,
			To:        escrow.Payer,
			Amount:    escrow.Amount,
			TaskID:    taskID,
			Timestamp: time.Now(),
			Status:    models.StatusCompleted,
		}
		if err := tx.Save(record); err != nil {
			return err
		}

		tx.RegisterCommitHook(func() {
			s.bus.Emit(&events.EscrowRefunded{
				TransactionID: record.ID,
				TaskID:        taskID,
				Payer:         escrow.Payer.String(),
				Amount:        escrow.Amount,
			})
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Refunded escrow for task %s", taskID)
	return record, nil
}
