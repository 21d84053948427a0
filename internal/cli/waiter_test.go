package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaiter_ReturnsResult(t *testing.T) {
	out := &syncBuffer{}
	w := NewWaiter(out)

	calls := 0
	err := w.Wait(context.Background(), func(context.Context) error {
		calls++
		time.Sleep(250 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWaiter_PropagatesError(t *testing.T) {
	w := NewWaiter(&syncBuffer{})
	boom := errors.New("boom")

	err := w.Wait(context.Background(), func(context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWaiter_PassesContext(t *testing.T) {
	w := NewWaiter(&syncBuffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Wait(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
}
