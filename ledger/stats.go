package ledger

import (
	"github.com/btcsuite/btcutil"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/models"
)

// Stats is a point-in-time aggregate view of the ledger.
type Stats struct {
	TransactionCount       int            `json:"transactionCount"`
	TotalVolume            btcutil.Amount `json:"totalVolume"`
	FeesCollected          btcutil.Amount `json:"feesCollected"`
	LockedEscrowCount      int            `json:"lockedEscrowCount"`
	LockedEscrowTotal      btcutil.Amount `json:"lockedEscrowTotal"`
	PendingWithdrawalCount int            `json:"pendingWithdrawalCount"`
	PendingWithdrawalTotal btcutil.Amount `json:"pendingWithdrawalTotal"`
}

// Stats computes aggregate ledger statistics. Because mutation is
// serialized by the database layer, the returned numbers describe one
// consistent state, never a half-applied operation.
func (s *Service) Stats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.View(func(tx database.Tx) error {
		var records []models.Transaction
		if err := tx.Read().Find(&records).Error; err != nil {
			return err
		}
		stats.TransactionCount = len(records)
		for _, record := range records {
			stats.TotalVolume += record.Amount
			stats.FeesCollected += record.Fee
		}

		var escrows []models.Escrow
		if err := tx.Read().Where("locked = ?", true).Find(&escrows).Error; err != nil {
			return err
		}
		stats.LockedEscrowCount = len(escrows)
		for _, escrow := range escrows {
			stats.LockedEscrowTotal += escrow.Amount
		}

		var withdrawals []models.WithdrawalRequest
		if err := tx.Read().Where("status = ?", models.StatusPending).Find(&withdrawals).Error; err != nil {
			return err
		}
		stats.PendingWithdrawalCount = len(withdrawals)
		for _, w := range withdrawals {
			stats.PendingWithdrawalTotal += w.Amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
