package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherInvokesAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls []string
	d.Subscribe(EventContactReceived, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("handler failure")
	})
	d.Subscribe(EventContactReceived, func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventForgeryBlocked, func(ctx context.Context, e Event) error {
		calls = append(calls, "wrong-type")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventContactReceived}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventApplicationSubmitted}); err != nil {
		t.Fatalf("publish with no subscribers: %v", err)
	}
}
