package notifications

import (
	"github.com/op/go-logging"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/models"
)

var log = logging.MustGetLogger("notif")

type notificationWrapper struct {
	Notification interface{} `json:"notification"`
}

type notifierStarted struct{}

// Notifier manages translating ledger events into notifications, saving
// them to the database, and sending them to websockets.
type Notifier struct {
	notifyFunc func(interface{}) error
	bus        events.Bus
	db         database.Database
	shutdown   chan struct{}
}

// NewNotifier returns a new notifer.
func NewNotifier(bus events.Bus, db database.Database, notifyFunc func(interface{}) error) *Notifier {
	return &Notifier{
		bus:        bus,
		db:         db,
		notifyFunc: notifyFunc,
		shutdown:   make(chan struct{}),
	}
}

// Start will start up the notifier. This should use it's own goroutine.
func (n *Notifier) Start() {
	notifications := []interface{}{
		&events.DepositReceived{},
		&events.EscrowLocked{},
		&events.EscrowReleased{},
		&events.EscrowRefunded{},
		&events.WithdrawalRequested{},
		&events.WithdrawalProcessed{},
		&events.BonusSent{},
		&events.FeeChanged{},
	}

	notificationSub, err := n.bus.Subscribe(notifications)
	if err != nil {
		log.Errorf("Error subscribing to events: %s", err)
	}

	n.bus.Emit(&notifierStarted{})

	for {
		select {
		case event := <-notificationSub.Out():
			notification, ok := event.(events.TypedNotification)
			if !ok {
				continue
			}

			record, err := models.NewNotificationRecord(notification)
			if err != nil {
				log.Errorf("Error serializing notification: %s", err)
				continue
			}

			err = n.db.Update(func(tx database.Tx) error {
				return tx.Save(record)
			})
			if err != nil {
				log.Errorf("Error saving notification to the database: %s", err)
				continue
			}

			if err := n.notifyFunc(notificationWrapper{record}); err != nil {
				log.Errorf("Error sending notification: %s", err)
			}
		case <-n.shutdown:
			return
		}
	}
}

// Stop shuts down the notifier.
func (n *Notifier) Stop() {
	close(n.shutdown)
}

// MarkNotificationAsRead marks the notification with the given id as read
// in the database.
func (n *Notifier) MarkNotificationAsRead(id string) error {
	return n.db.Update(func(tx database.Tx) error {
		return tx.Update("is_read", true, map[string]interface{}{"id = ?": id}, &models.NotificationRecord{})
	})
}

// DeleteNotification deletes the notification with the given id from the
// database.
func (n *Notifier) DeleteNotification(id string) error {
	return n.db.Update(func(tx database.Tx) error {
		return tx.Delete("id", id, nil, &models.NotificationRecord{})
	})
}
