package models

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskbazaar/paymentd/events"
)

// NotificationRecord encapsulates one of many notifications with additional
// metadata. The actual notification is serialized as JSON so as to
// make this model suitable for the database. It may also be sent over
// the websocket API in this format.
type NotificationRecord struct {
	ID         string          `gorm:"primary_key" json:"-"`
	Timestamp  time.Time       `json:"timestamp"`
	IsRead     bool            `json:"read"`
	Serialized json.RawMessage `json:"notification"`
	Type       string          `json:"type"`
}

// NewNotificationRecord takes in a notification and returns a new NotificationRecord
// with a new ID and timestamp.
func NewNotificationRecord(notification events.TypedNotification) (*NotificationRecord, error) {
	out, err := json.MarshalIndent(notification, "", "    ")
	if err != nil {
		return nil, err
	}

	return &NotificationRecord{
		ID:         newNotificationID(),
		Timestamp:  time.Now(),
		Type:       notification.Type(),
		Serialized: out,
	}, nil
}

// Notification deserializes and returns the wrapped notification.
func (n *NotificationRecord) Notification() (events.TypedNotification, error) {
	notif, ok := notificationMap[n.Type]
	if !ok {
		return nil, fmt.Errorf("unknown notification type: %s", n.Type)
	}
	if err := json.Unmarshal(n.Serialized, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

func newNotificationID() string {
	r := make([]byte, 20)
	rand.Read(r)
	return base64.StdEncoding.EncodeToString(r)
}

var notificationMap = map[string]events.TypedNotification{
	"DepositReceived":     &events.DepositReceived{},
	"EscrowLocked":        &events.EscrowLocked{},
	"EscrowReleased":      &events.EscrowReleased{},
	"EscrowRefunded":      &events.EscrowRefunded{},
	"WithdrawalRequested": &events.WithdrawalRequested{},
	"WithdrawalProcessed": &events.WithdrawalProcessed{},
	"BonusSent":           &events.BonusSent{},
	"FeeChanged":          &events.FeeChanged{},
}
