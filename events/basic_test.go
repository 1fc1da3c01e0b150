package events

import "testing"

func TestSubscribeAndEmit(t *testing.T) {
	bus := NewBus()

	sub1, err := bus.Subscribe(&EscrowLocked{})
	if err != nil {
		t.Fatal(err)
	}

	sub2, err := bus.Subscribe(&WithdrawalProcessed{})
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		bus.Emit(&EscrowLocked{TaskID: "1"})
		bus.Emit(&WithdrawalProcessed{WithdrawalID: 1})
	}()

	notif1 := <-sub1.Out()
	locked, ok := notif1.(*EscrowLocked)
	if !ok {
		t.Error("Notification is wrong type")
	} else if locked.TaskID != "1" {
		t.Errorf("Expected taskID 1, got %s", locked.TaskID)
	}

	notif2 := <-sub2.Out()
	_, ok = notif2.(*WithdrawalProcessed)
	if !ok {
		t.Error("Notification is wrong type")
	}

	if err := sub1.Close(); err != nil {
		t.Error(err)
	}

	if err := sub2.Close(); err != nil {
		t.Error(err)
	}
}

func TestSubscribeMultipleTypes(t *testing.T) {
	bus := NewBus()

	sub, err := bus.Subscribe([]interface{}{&EscrowReleased{}, &EscrowRefunded{}})
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	go func() {
		bus.Emit(&EscrowReleased{TaskID: "a"})
		bus.Emit(&EscrowRefunded{TaskID: "b"})
	}()

	for i := 0; i < 2; i++ {
		switch event := (<-sub.Out()).(type) {
		case *EscrowReleased:
			if event.TaskID != "a" {
				t.Errorf("Expected taskID a, got %s", event.TaskID)
			}
		case *EscrowRefunded:
			if event.TaskID != "b" {
				t.Errorf("Expected taskID b, got %s", event.TaskID)
			}
		default:
			t.Error("Notification is wrong type")
		}
	}
}

func TestSubscribeNonPointer(t *testing.T) {
	bus := NewBus()

	if _, err := bus.Subscribe(EscrowLocked{}); err == nil {
		t.Error("Expected error subscribing with non-pointer type")
	}
}
