package ledger

import (
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/jinzhu/gorm"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/models"
)

// RequestWithdrawal debits the caller immediately and queues an external
// payout to destination. The destination address is opaque to the ledger.
// The request stays pending until the external settlement process reports
// the outcome through ProcessWithdrawal; on failure the debit is credited
// back then.
func (s *Service) RequestWithdrawal(caller models.Identity, amount btcutil.Amount, destination string) (*models.WithdrawalRequest, error) {
	var request *models.WithdrawalRequest
	err := s.db.Update(func(tx database.Tx) error {
		if caller.IsAnonymous() {
			return ErrUnauthenticated
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}
		params, err := s.loadParams(tx)
		if err != nil {
			return err
		}
		if amount < params.MinWithdrawal {
			return ErrBelowMinimum{Minimum: params.MinWithdrawal}
		}
		balance, err := balanceOf(tx, caller)
		if err != nil {
			return err
		}
		if balance < amount {
			return ErrInsufficientFunds
		}

		withdrawalID, err := nextID(tx, withdrawalCounter)
		if err != nil {
			return err
		}
		transactionID, err := nextID(tx, transactionCounter)
		if err != nil {
			return err
		}
		if err := debit(tx, caller, amount); err != nil {
			return err
		}

		record := &models.Transaction{
			ID:        transactionID,
			Kind:      models.KindWithdrawal,
			From:      caller,
			Amount:    amount,
			Timestamp: time.Now(),
			Status:    models.StatusPending,
		}
		if err := tx.Save(record); err != nil {
			return err
		}

		request = &models.WithdrawalRequest{
			ID:            withdrawalID,
			Requester:     caller,
			Amount:        amount,
			Destination:   destination,
			RequestedAt:   time.Now(),
			Status:        models.StatusPending,
			TransactionID: transactionID,
		}
		if err := tx.Save(request); err != nil {
			return err
		}

		tx.RegisterCommitHook(func() {
			s.bus.Emit(&events.WithdrawalRequested{
				WithdrawalID:  request.ID,
				TransactionID: record.ID,
				Requester:     caller.String(),
				Amount:        amount,
				Destination:   destination,
			})
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Queued withdrawal %d of %d for %s", request.ID, int64(amount), caller)
	return request, nil
}

// ProcessWithdrawal records the outcome of a pending withdrawal as
// reported by the external settlement process. On success the request and
// its ledger transaction complete with the external reference attached.
// On failure the already-debited amount is credited back to the
// requester. Recording a failure is itself a successful call; only a
// second attempt to process the same withdrawal is an error.
func (s *Service) ProcessWithdrawal(id uint64, externalRef string, success bool) (*models.WithdrawalRequest, error) {
	var request *models.WithdrawalRequest
	err := s.db.Update(func(tx database.Tx) error {
		var w models.WithdrawalRequest
		err := tx.Read().Where("id = ?", id).First(&w).Error
		if gorm.IsRecordNotFoundError(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		if w.Status != models.StatusPending {
			return ErrAlreadyProcessed
		}

		var record models.Transaction
		err = tx.Read().Where("id = ?", w.TransactionID).First(&record).Error
		if err != nil {
			return err
		}

		now := time.Now()
		w.ProcessedAt = &now
		if success {
			w.Status = models.StatusCompleted
			w.ExternalRef = externalRef
			record.Status = models.StatusCompleted
			record.ExternalRef = externalRef
		} else {
			w.Status = models.StatusFailed
			record.Status = models.StatusFailed
			if err := credit(tx, w.Requester, w.Amount); err != nil {
				return err
			}
		}
		if err := tx.Save(&w); err != nil {
			return err
		}
		if err := tx.Save(&record); err != nil {
			return err
		}
		request = &w

		tx.RegisterCommitHook(func() {
			s.bus.Emit(&events.WithdrawalProcessed{
				WithdrawalID: w.ID,
				Requester:    w.Requester.String(),
				Amount:       w.Amount,
				Success:      success,
				ExternalRef:  externalRef,
			})
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if success {
		log.Infof("Withdrawal %d completed (ref %s)", id, externalRef)
	} else {
		log.Infof("Withdrawal %d failed, credited %d back to %s", id, int64(request.Amount), request.Requester)
	}
	return request, nil
}
