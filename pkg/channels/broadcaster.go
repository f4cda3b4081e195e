package channels

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// subscriber holds a channel and its send timeout configuration.
type subscriber[T any] struct {
	ch       chan<- T
	timeout  *time.Duration // nil means non-blocking
	inactive atomic.Bool
	dropped  atomic.Int32
}

func (s *subscriber[T]) send(msg T) bool {
	if s.inactive.Load() {
		s.dropped.Add(1)
		return false
	}

	var err error
	if s.timeout != nil {
		err = SendWithTimeout(s.ch, msg, *s.timeout)
	} else {
		err = SendNonBlock(s.ch, msg)
	}

	if err != nil {
		// A closed channel means the subscriber is gone for good;
		// anything else is one dropped message.
		s.dropped.Add(1)
		if errors.Is(err, ErrChannelClosed) {
			s.inactive.Store(true)
		}
		return false
	}

	return true
}

// Broadcaster delivers each published message to every live subscriber.
//
// Publish never blocks the caller: by default each subscriber gets a
// non-blocking send and full channels simply miss that message. A
// subscriber registered with a timeout gets a bounded blocking send
// instead. Subscribers whose channels have been closed are marked
// inactive and skipped from then on.
//
// Subscriptions may come and go at any time; the zero Broadcaster is
// ready to use.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	subs   map[int]*subscriber[T]
	nextID int
}

// Subscribe registers ch for all future messages with non-blocking
// delivery. The returned cancel function removes the subscription and
// is safe to call more than once.
func (b *Broadcaster[T]) Subscribe(ch chan<- T) (cancel func()) {
	return b.add(&subscriber[T]{ch: ch})
}

// SubscribeWithTimeout registers ch with a bounded blocking send:
// messages wait up to timeout for room before being dropped.
func (b *Broadcaster[T]) SubscribeWithTimeout(ch chan<- T, timeout time.Duration) (cancel func()) {
	return b.add(&subscriber[T]{ch: ch, timeout: &timeout})
}

func (b *Broadcaster[T]) add(sub *subscriber[T]) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]*subscriber[T])
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = sub

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish delivers msg to every subscriber and reports how many
// received it.
func (b *Broadcaster[T]) Publish(msg T) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for _, sub := range b.subs {
		if sub.send(msg) {
			delivered++
		}
	}

	return delivered
}

// Len returns the number of registered subscribers, inactive ones
// included.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// SubscriberStats reports per-subscriber delivery counters.
type SubscriberStats struct {
	Dropped  int
	Inactive bool
}

// Stats returns a snapshot of every subscriber's counters, in no
// particular order.
func (b *Broadcaster[T]) Stats() []SubscriberStats {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := make([]SubscriberStats, 0, len(b.subs))
	for _, sub := range b.subs {
		stats = append(stats, SubscriberStats{
			Dropped:  int(sub.dropped.Load()),
			Inactive: sub.inactive.Load(),
		})
	}

	return stats
}
