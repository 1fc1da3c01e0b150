package ledger

import (
	"github.com/btcsuite/btcutil"
	"github.com/jinzhu/gorm"
	"github.com/op/go-logging"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/models"
)

var log = logging.MustGetLogger("LEDG")

const (
	// DefaultFeePercent is the platform fee charged at escrow release if
	// the administrator never set one.
	DefaultFeePercent = uint(5)

	// MaxFeePercent is the cap on the platform fee.
	MaxFeePercent = uint(20)

	// DefaultMinDeposit is the smallest accepted deposit in satoshis.
	DefaultMinDeposit = btcutil.Amount(1000)

	// DefaultMinWithdrawal is the smallest accepted withdrawal in satoshis.
	DefaultMinWithdrawal = btcutil.Amount(10000)

	transactionCounter = "transaction"
	withdrawalCounter  = "withdrawal"
)

// Service is the payment service. It owns every user's spendable balance,
// the task escrow table, the withdrawal queue and the transaction log.
// Other marketplace components never write this state directly; they call
// the operations exposed here and each operation either fully applies or
// fully fails.
//
// All mutating operations run inside a single managed database
// transaction, so they are serialized by the database layer and never
// observe each other's partial state.
type Service struct {
	db  database.Database
	bus events.Bus
}

// Option modifies the initial ledger parameters. Options only take effect
// the first time a database is used; after that the persisted parameters
// win.
type Option func(*models.LedgerParams)

// FeePercent sets the initial platform fee percent.
func FeePercent(percent uint) Option {
	return func(p *models.LedgerParams) {
		p.FeePercent = percent
	}
}

// Minimums sets the initial deposit and withdrawal floors.
func Minimums(minDeposit, minWithdrawal btcutil.Amount) Option {
	return func(p *models.LedgerParams) {
		p.MinDeposit = minDeposit
		p.MinWithdrawal = minWithdrawal
	}
}

// NewService instantiates the payment service on top of the given database
// and event bus. It migrates the ledger tables and loads or creates the
// persisted parameter row.
func NewService(db database.Database, bus events.Bus, opts ...Option) (*Service, error) {
	s := &Service{db: db, bus: bus}

	err := db.Update(func(tx database.Tx) error {
		for _, m := range []interface{}{
			&models.Balance{},
			&models.Transaction{},
			&models.Escrow{},
			&models.WithdrawalRequest{},
			&models.Counter{},
			&models.LedgerParams{},
		} {
			if err := tx.Migrate(m); err != nil {
				return err
			}
		}

		var params models.LedgerParams
		err := tx.Read().First(&params).Error
		if gorm.IsRecordNotFoundError(err) {
			params = models.LedgerParams{
				ID:            1,
				FeePercent:    DefaultFeePercent,
				MinDeposit:    DefaultMinDeposit,
				MinWithdrawal: DefaultMinWithdrawal,
			}
			for _, opt := range opts {
				opt(&params)
			}
			if params.FeePercent > MaxFeePercent {
				return ErrFeeTooHigh{Max: MaxFeePercent}
			}
			return tx.Save(&params)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// SubscribeEvent returns a subscription to the given event on the ledger's
// event bus.
func (s *Service) SubscribeEvent(event interface{}) (events.Subscription, error) {
	return s.bus.Subscribe(event)
}
