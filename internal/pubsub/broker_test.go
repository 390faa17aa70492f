package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return ev
	case <-time.After(200 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_DeliversToEverySubscriber(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx := context.Background()
	first := broker.Subscribe(ctx)
	second := broker.Subscribe(ctx)
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(UpdatedEvent, "notes.txt")

	for _, ch := range []<-chan Event[string]{first, second} {
		ev := receive(t, ch)
		require.Equal(t, UpdatedEvent, ev.Type)
		require.Equal(t, "notes.txt", ev.Payload)
		require.False(t, ev.Timestamp.IsZero())
	}
}

func TestBroker_CancelledSubscriptionIsRemoved(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 },
		time.Second, 5*time.Millisecond)
	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			broker.Publish(CreatedEvent, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Publish blocked on a full subscriber")
	}

	require.Equal(t, 0, receive(t, ch).Payload)
	require.Equal(t, int64(4), broker.Dropped())
}

func TestBroker_CloseIsIdempotent(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close()

	_, ok := <-ch
	require.False(t, ok)

	late := broker.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok, "subscribing after Close yields a closed channel")

	broker.Publish(UpdatedEvent, "ignored")
	require.Equal(t, 0, broker.SubscriberCount())
}
