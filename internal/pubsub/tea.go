package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd returns a Bubble Tea command that blocks until the next event on
// ch and delivers it as a tea.Msg. It yields nil once ctx is cancelled or the
// channel is closed, which ends the listen chain.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}

// ContinuousListener keeps one broker subscription alive across Update calls.
// Re-issue Listen after handling each event to keep receiving.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker for the lifetime of ctx.
func NewContinuousListener[T any](ctx context.Context, broker Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Listen returns a tea.Cmd that waits for the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	if l == nil {
		return nil
	}
	return ListenCmd(l.ctx, l.ch)
}
