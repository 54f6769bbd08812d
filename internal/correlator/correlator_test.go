package correlator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-wallet/internal/domain"
)

func TestFireBeforeTimeout(t *testing.T) {
	c := New()

	r, err := c.AwaitOnce(QuoteKey("q1"))
	require.NoError(t, err)

	go func() {
		time.Sleep(10 * time.Millisecond)
		c.Fire(QuoteKey("q1"), "payload")
	}()

	got, err := r.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, "payload", got)
	require.Zero(t, c.Pending())
}

func TestFireBeforeWait(t *testing.T) {
	c := New()

	r, err := c.AwaitOnce(TransferKey("t1"))
	require.NoError(t, err)

	require.True(t, c.Fire(TransferKey("t1"), 42))

	got, err := r.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, 42, got)
}

func TestWaitTimeout(t *testing.T) {
	c := New()

	r, err := c.AwaitOnce(QuoteKey("q2"))
	require.NoError(t, err)

	got, err := r.Wait(context.Background(), 20*time.Millisecond)
	require.ErrorIs(t, err, domain.ErrTimeout)
	require.Nil(t, got)
	require.Zero(t, c.Pending())

	// late callbacks are dropped
	require.False(t, c.Fire(QuoteKey("q2"), "late"))
}

func TestWaitContextCanceled(t *testing.T) {
	c := New()

	r, err := c.AwaitOnce(QuoteKey("q3"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Wait(ctx, time.Second)
	require.True(t, errors.Is(err, context.Canceled))
	require.Zero(t, c.Pending())
}

func TestFireWithoutWaiter(t *testing.T) {
	c := New()

	require.False(t, c.Fire(AuthorizationKey("a1"), "x"))
	require.Zero(t, c.Pending())
}

func TestFirstFireWins(t *testing.T) {
	c := New()

	r, err := c.AwaitOnce(TransferKey("t2"))
	require.NoError(t, err)

	require.True(t, c.Fire(TransferKey("t2"), "first"))
	require.False(t, c.Fire(TransferKey("t2"), "second"))

	got, err := r.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	require.Equal(t, "first", got)
}

func TestAwaitOnceTwice(t *testing.T) {
	c := New()

	r, err := c.AwaitOnce(QuoteKey("q4"))
	require.NoError(t, err)

	_, err = c.AwaitOnce(QuoteKey("q4"))
	require.ErrorIs(t, err, ErrAlreadyAwaiting)

	r.Cancel()

	_, err = c.AwaitOnce(QuoteKey("q4"))
	require.NoError(t, err)
}

func TestConcurrentKeys(t *testing.T) {
	c := New()

	const n = 50

	resolvers := make([]*Resolver, n)
	for i := range resolvers {
		r, err := c.AwaitOnce(TransferKey(string(rune('a' + i))))
		require.NoError(t, err)
		resolvers[i] = r
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			c.Fire(TransferKey(string(rune('a'+i))), i)
		}(i)
	}

	for i, r := range resolvers {
		got, err := r.Wait(context.Background(), time.Second)
		require.NoError(t, err)
		require.Equal(t, i, got)
	}

	wg.Wait()
	require.Zero(t, c.Pending())
}
