package ledger

import (
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/jinzhu/gorm"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/models"
)

// Balance returns the spendable balance for the given identity. An
// identity the ledger has never seen has a balance of zero.
func (s *Service) Balance(id models.Identity) (btcutil.Amount, error) {
	var balance btcutil.Amount
	err := s.db.View(func(tx database.Tx) error {
		var err error
		balance, err = balanceOf(tx, id)
		return err
	})
	return balance, err
}

// Transaction returns the transaction with the given id.
func (s *Service) Transaction(id uint64) (*models.Transaction, error) {
	var record models.Transaction
	err := s.db.View(func(tx database.Tx) error {
		err := tx.Read().Where("id = ?", id).First(&record).Error
		if gorm.IsRecordNotFoundError(err) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Transactions returns a page of the given identity's transaction
// history, newest first with ties broken by ascending id. The identity
// appears in its history whether it sent or received. An offset at or
// past the end returns an empty page; a negative limit returns everything
// from offset on.
func (s *Service) Transactions(id models.Identity, limit, offset int) ([]models.Transaction, error) {
	var records []models.Transaction
	err := s.db.View(func(tx database.Tx) error {
		query := tx.Read().
			Where("from_id = ? OR to_id = ?", id.String(), id.String()).
			Order("timestamp desc, id asc").
			Offset(offset)
		if limit >= 0 {
			query = query.Limit(limit)
		}
		return query.Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Escrow returns the escrow record for the given task id, locked or not.
func (s *Service) Escrow(taskID string) (*models.Escrow, error) {
	var escrow models.Escrow
	err := s.db.View(func(tx database.Tx) error {
		err := tx.Read().Where("task_id = ?", taskID).First(&escrow).Error
		if gorm.IsRecordNotFoundError(err) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &escrow, nil
}

// ExpiredEscrows returns every escrow that is still locked past its
// expiry. The ledger never acts on expiry itself; this is for the task
// board and administrators to drive compensation from.
func (s *Service) ExpiredEscrows() ([]models.Escrow, error) {
	var escrows []models.Escrow
	err := s.db.View(func(tx database.Tx) error {
		return tx.Read().
			Where("locked = ? AND expiry IS NOT NULL AND expiry <= ?", true, time.Now()).
			Order("task_id asc").
			Find(&escrows).Error
	})
	if err != nil {
		return nil, err
	}
	return escrows, nil
}

// Withdrawal returns the withdrawal request with the given id.
func (s *Service) Withdrawal(id uint64) (*models.WithdrawalRequest, error) {
	var request models.WithdrawalRequest
	err := s.db.View(func(tx database.Tx) error {
		err := tx.Read().Where("id = ?", id).First(&request).Error
		if gorm.IsRecordNotFoundError(err) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Withdrawals returns all withdrawal requests made by the given identity,
// newest first.
func (s *Service) Withdrawals(requester models.Identity) ([]models.WithdrawalRequest, error) {
	var requests []models.WithdrawalRequest
	err := s.db.View(func(tx database.Tx) error {
		return tx.Read().
			Where("requester = ?", requester.String()).
			Order("id desc").
			Find(&requests).Error
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}
