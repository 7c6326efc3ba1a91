package events

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string

	d.Subscribe(EventSessionInvalidated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.SessionID)
		return errors.New("boom")
	})
	d.Subscribe(EventSessionInvalidated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SessionID)
		return nil
	})
	d.Subscribe(EventFoodUpdated, func(_ context.Context, e Event) error {
		got = append(got, "food")
		return nil
	})

	err := d.Publish(context.Background(), New(EventSessionInvalidated, "sid-1", nil))
	if err == nil {
		t.Fatalf("Publish: expected joined handler error")
	}
	if len(got) != 2 || got[0] != "first:sid-1" || got[1] != "second:sid-1" {
		t.Fatalf("Publish: unexpected deliveries %v", got)
	}
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventFoodUpdated, "sid", FoodUpdatedPayload{FoodID: "f1", Action: "reserve"})
	if e.ID == "" || e.Timestamp.IsZero() {
		t.Fatalf("New: expected id and timestamp, got %+v", e)
	}
}

func TestDispatcherIsolatesPanickingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	delivered := false

	d.Subscribe(EventFoodUpdated, func(context.Context, Event) error {
		panic("bad subscriber")
	})
	d.Subscribe(EventFoodUpdated, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	err := d.Publish(context.Background(), New(EventFoodUpdated, "sid", nil))
	if err == nil || !strings.Contains(err.Error(), "bad subscriber") {
		t.Fatalf("Publish: want panic reported as error got %v", err)
	}
	if !delivered {
		t.Fatalf("Publish: handler after the panicking one was skipped")
	}
}
