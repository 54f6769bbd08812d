// Package correlator matches asynchronous scheme callbacks with the requests waiting for them.
//
// A waiter registers a key with AwaitOnce before the outbound call is made,
// so a callback that arrives before Wait starts blocking is still delivered.
// Fire on a key nobody registered is dropped.
package correlator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-petr/pet-wallet/internal/domain"
)

// ErrAlreadyAwaiting indicates a second waiter for a key that already has one.
var ErrAlreadyAwaiting = errors.New("key is already awaited")

var (
	pendingGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wallet_correlator_pending",
		Help: "Number of callbacks currently awaited",
	})

	droppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_correlator_dropped_total",
		Help: "Callbacks dropped because nobody awaited them",
	}, []string{"reason"})
)

// Key helpers for the three kinds of awaited callbacks.
func QuoteKey(id string) string         { return "quotes/" + id }
func TransferKey(id string) string      { return "transfers/" + id }
func AuthorizationKey(id string) string { return "authorizations/" + id }

type slot struct {
	ch chan any
}

// Correlator is a keyed set of single-use slots.
type Correlator struct {
	mu    sync.Mutex
	slots map[string]*slot
}

// New returns an empty Correlator.
func New() *Correlator {
	return &Correlator{slots: make(map[string]*slot)}
}

// Resolver is the waiting side of a registered key.
type Resolver struct {
	c    *Correlator
	key  string
	slot *slot
}

// AwaitOnce registers interest in key.
func (c *Correlator) AwaitOnce(key string) (*Resolver, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.slots[key]; ok {
		return nil, ErrAlreadyAwaiting
	}

	s := &slot{ch: make(chan any, 1)}
	c.slots[key] = s
	pendingGauge.Inc()

	return &Resolver{c: c, key: key, slot: s}, nil
}

// Fire delivers payload to the waiter of key.
//
// It reports false when no waiter is registered or the slot already holds a payload.
func (c *Correlator) Fire(key string, payload any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[key]
	if !ok {
		droppedTotal.WithLabelValues("unawaited").Inc()
		return false
	}

	select {
	case s.ch <- payload:
		return true
	default:
		droppedTotal.WithLabelValues("duplicate").Inc()
		return false
	}
}

// Pending returns the number of registered keys.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.slots)
}

func (c *Correlator) release(key string, s *slot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.slots[key]; ok && cur == s {
		delete(c.slots, key)
		pendingGauge.Dec()
	}
}

// Wait blocks until the payload arrives, timeout elapses or ctx is done.
//
// The slot is released on every outcome; a later Fire for the key is dropped.
func (r *Resolver) Wait(ctx context.Context, timeout time.Duration) (any, error) {
	defer r.c.release(r.key, r.slot)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case payload := <-r.slot.ch:
		return payload, nil
	case <-timer.C:
		return nil, domain.ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel releases the slot without waiting, e.g. when the outbound call failed.
func (r *Resolver) Cancel() {
	r.c.release(r.key, r.slot)
}
