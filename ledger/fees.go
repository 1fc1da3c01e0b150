package ledger

import (
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/models"
)

// UpdatePlatformFee sets the platform fee percent used by subsequent
// escrow releases. The change is not retroactive: escrows released before
// the call keep the fee they were charged. The percent is capped.
func (s *Service) UpdatePlatformFee(newPercent uint) error {
	var oldPercent uint
	err := s.db.Update(func(tx database.Tx) error {
		if newPercent > MaxFeePercent {
			return ErrFeeTooHigh{Max: MaxFeePercent}
		}
		params, err := s.loadParams(tx)
		if err != nil {
			return err
		}
		oldPercent = params.FeePercent
		params.FeePercent = newPercent
		if err := tx.Save(&params); err != nil {
			return err
		}

		tx.RegisterCommitHook(func() {
			s.bus.Emit(&events.FeeChanged{
				OldPercent: oldPercent,
				NewPercent: newPercent,
			})
		})
		return nil
	})
	if err != nil {
		return err
	}
	log.Infof("Platform fee changed from %d%% to %d%%", oldPercent, newPercent)
	return nil
}

// Params returns the current runtime-settable ledger parameters.
func (s *Service) Params() (*models.LedgerParams, error) {
	var params models.LedgerParams
	err := s.db.View(func(tx database.Tx) error {
		var err error
		params, err = s.loadParams(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &params, nil
}
