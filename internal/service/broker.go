package service

import (
	"sync"

	"campus-canteen/internal/domain"
)

// Broker fans change events out to in-process subscribers, one channel per
// subscription. Subscribers see only their own user's events. The returned
// cancel func must be called when the consumer goes away; a forgotten
// subscription would keep receiving events into stale state.
type Broker struct {
	mu   sync.Mutex
	next int
	subs map[int]*subscription
}

type subscription struct {
	userID int
	ch     chan domain.ChangeEvent
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]*subscription)}
}

func (b *Broker) Subscribe(userID int) (<-chan domain.ChangeEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	sub := &subscription{userID: userID, ch: make(chan domain.ChangeEvent, 16)}
	b.subs[id] = sub

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if existing, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(existing.ch)
		}
	}
	return sub.ch, cancel
}

// Publish delivers the event to every matching subscriber. Slow consumers
// with a full buffer are skipped rather than blocking the feed.
func (b *Broker) Publish(event domain.ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.userID != event.UserID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}
