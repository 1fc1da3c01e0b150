package notifications

import (
	"io/ioutil"
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/taskbazaar/paymentd/database"
	"github.com/taskbazaar/paymentd/events"
	"github.com/taskbazaar/paymentd/models"
	"github.com/taskbazaar/paymentd/repo"
)

func TestNotifier(t *testing.T) {
	bus := events.NewBus()
	dataDir, err := ioutil.TempDir("", "paymentd_notifier_test")
	if err != nil {
		t.Fatal(err)
	}
	r, err := repo.NewMemoryRepo(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	defer r.DestroyRepo()
	db := r.DB()
	out := make(chan interface{})
	notifFunc := func(i interface{}) error {
		out <- i
		return nil
	}

	sub, err := bus.Subscribe(&notifierStarted{})
	if err != nil {
		t.Fatal(err)
	}

	notifier := NewNotifier(bus, db, notifFunc)
	go notifier.Start()
	defer notifier.Stop()

	select {
	case <-sub.Out():
	case <-time.After(time.Second * 10):
		t.Fatal("Timed out waiting on channel")
	}

	tests := []events.TypedNotification{
		&events.DepositReceived{},
		&events.EscrowLocked{},
		&events.EscrowReleased{},
		&events.EscrowRefunded{},
		&events.WithdrawalRequested{},
		&events.WithdrawalProcessed{},
		&events.BonusSent{},
		&events.FeeChanged{},
	}

	var savedIDs []string
	for _, test := range tests {

		bus.Emit(test)

		select {
		case n1 := <-out:
			wrapper, ok := n1.(notificationWrapper)
			if !ok {
				t.Fatal("Invalid notification type")
			}

			record, ok := wrapper.Notification.(*models.NotificationRecord)
			if !ok {
				t.Fatal("Notification is not a record")
			}

			if record.Type != test.Type() {
				t.Errorf("Expected notification type %s, got %s", test.Type(), record.Type)
			}

			var saved models.NotificationRecord
			err = db.View(func(tx database.Tx) error {
				return tx.Read().Where("id = ?", record.ID).First(&saved).Error
			})
			if err != nil {
				t.Errorf("Notification %s was not saved: %s", test.Type(), err)
			}

			if _, err := saved.Notification(); err != nil {
				t.Errorf("Error deserializing saved notification: %s", err)
			}
			savedIDs = append(savedIDs, record.ID)
		case <-time.After(time.Second * 10):
			t.Fatal("Timed out waiting on channel")
		}
	}

	if err := notifier.MarkNotificationAsRead(savedIDs[0]); err != nil {
		t.Fatal(err)
	}
	var read models.NotificationRecord
	err = db.View(func(tx database.Tx) error {
		return tx.Read().Where("id = ?", savedIDs[0]).First(&read).Error
	})
	if err != nil {
		t.Fatal(err)
	}
	if !read.IsRead {
		t.Error("Notification was not marked as read")
	}

	if err := notifier.DeleteNotification(savedIDs[0]); err != nil {
		t.Fatal(err)
	}
	var deleted models.NotificationRecord
	err = db.View(func(tx database.Tx) error {
		return tx.Read().Where("id = ?", savedIDs[0]).First(&deleted).Error
	})
	if !gorm.IsRecordNotFoundError(err) {
		t.Errorf("Expected notification to be deleted, got %v", err)
	}
}
